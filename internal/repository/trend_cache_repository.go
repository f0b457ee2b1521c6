package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type TrendCacheRepository interface {
	GetActive(ctx context.Context, queryHash string) (*models.TrendCacheEntry, error)
	Upsert(ctx context.Context, entry *models.TrendCacheEntry) error
	Remove(ctx context.Context, queryHash string) error
	Stats(ctx context.Context) (*transfer.CacheStats, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type trendCacheRepository struct {
	db *sql.DB
}

func NewTrendCacheRepository(db *sql.DB) TrendCacheRepository {
	return &trendCacheRepository{db: db}
}

// GetActive returns a live entry and bumps its hit counter in the same
// statement. The expiry check and the increment must not be separate
// round trips: other processes share this table and a read-then-write
// pair could count a hit against a row that just expired.
func (r *trendCacheRepository) GetActive(ctx context.Context, queryHash string) (*models.TrendCacheEntry, error) {
	query := `
		UPDATE trend_cache
		SET hit_count = hit_count + 1
		WHERE query_hash = $1 AND expires_at > NOW()
		RETURNING query_hash, query_text, payload, hit_count, created_at, expires_at
	`

	var entry models.TrendCacheEntry
	err := r.db.QueryRowContext(ctx, query, queryHash).Scan(
		&entry.QueryHash, &entry.QueryText, &entry.Payload,
		&entry.HitCount, &entry.CreatedAt, &entry.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &entry, nil
}

// Upsert overwrites whatever is stored for the hash. Last write wins,
// hit count restarts at zero.
func (r *trendCacheRepository) Upsert(ctx context.Context, entry *models.TrendCacheEntry) error {
	query := `
		INSERT INTO trend_cache (query_hash, query_text, payload, hit_count, created_at, expires_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		ON CONFLICT (query_hash) DO UPDATE
		SET query_text = EXCLUDED.query_text,
			payload = EXCLUDED.payload,
			hit_count = 0,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.QueryHash, entry.QueryText, entry.Payload, entry.CreatedAt, entry.ExpiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *trendCacheRepository) Remove(ctx context.Context, queryHash string) error {
	query := `DELETE FROM trend_cache WHERE query_hash = $1`
	_, err := r.db.ExecContext(ctx, query, queryHash)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *trendCacheRepository) Stats(ctx context.Context) (*transfer.CacheStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(hit_count), 0), MIN(created_at), MAX(created_at) FROM trend_cache`

	var stats transfer.CacheStats
	var oldest, newest sql.NullTime
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalEntries, &stats.TotalHits, &oldest, &newest)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if oldest.Valid {
		stats.OldestEntry = &oldest.Time
	}
	if newest.Valid {
		stats.NewestEntry = &newest.Time
	}
	return &stats, nil
}

func (r *trendCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM trend_cache WHERE expires_at <= $1`
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
