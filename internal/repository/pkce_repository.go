package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
)

type PKCERepository interface {
	Save(ctx context.Context, entry *models.PKCEEntry) error
	Take(ctx context.Context, stateKey string) (string, bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type pkceRepository struct {
	db *sql.DB
}

func NewPKCERepository(db *sql.DB) PKCERepository {
	return &pkceRepository{db: db}
}

func (r *pkceRepository) Save(ctx context.Context, entry *models.PKCEEntry) error {
	query := `
		INSERT INTO pkce_verifiers (state_key, verifier, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (state_key) DO UPDATE
		SET verifier = EXCLUDED.verifier,
			expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, query, entry.StateKey, entry.Verifier, entry.ExpiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Take consumes the verifier: the row is deleted as part of the read so
// a state key can never be redeemed twice, and expired rows never
// qualify even if the purge job has not run yet.
func (r *pkceRepository) Take(ctx context.Context, stateKey string) (string, bool, error) {
	query := `
		DELETE FROM pkce_verifiers
		WHERE state_key = $1 AND expires_at > NOW()
		RETURNING verifier
	`

	var verifier string
	err := r.db.QueryRowContext(ctx, query, stateKey).Scan(&verifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		slog.Info(err.Error())
		return "", false, err
	}

	return verifier, true, nil
}

func (r *pkceRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM pkce_verifiers WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return n, nil
}
