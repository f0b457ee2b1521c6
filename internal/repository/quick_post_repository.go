package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
)

type QuickPostRepository interface {
	Create(ctx context.Context, post *models.QuickPost) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*models.QuickPost, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.QuickPost, error)
	UpdateSchedule(ctx context.Context, id, userID int64, scheduledAt time.Time) (bool, error)
	Remove(ctx context.Context, id, userID int64) (bool, error)
}

type quickPostRepository struct {
	db *sql.DB
}

func NewQuickPostRepository(db *sql.DB) QuickPostRepository {
	return &quickPostRepository{db: db}
}

func (r *quickPostRepository) Create(ctx context.Context, post *models.QuickPost) (int64, error) {
	query := `
		INSERT INTO quick_posts (public_id, user_id, platform, content, scheduled_at, status, media_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.PublicID, post.UserID, post.Platform, post.Content,
		post.ScheduledAt, post.Status, post.MediaURL).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *quickPostRepository) GetByID(ctx context.Context, id, userID int64) (*models.QuickPost, error) {
	query := `SELECT id, public_id, user_id, platform, content, scheduled_at, status, media_url, created_at, updated_at
		FROM quick_posts WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	var post models.QuickPost
	err := row.Scan(&post.ID, &post.PublicID, &post.UserID, &post.Platform, &post.Content,
		&post.ScheduledAt, &post.Status, &post.MediaURL, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &post, nil
}

func (r *quickPostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.QuickPost, error) {
	query := `SELECT id, public_id, user_id, platform, content, scheduled_at, status, media_url, created_at, updated_at
		FROM quick_posts WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.QuickPost
	for rows.Next() {
		var post models.QuickPost
		err := rows.Scan(&post.ID, &post.PublicID, &post.UserID, &post.Platform, &post.Content,
			&post.ScheduledAt, &post.Status, &post.MediaURL, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// UpdateSchedule moves a post to a new time. Only rows still in the
// scheduled state are touched; the bool reports whether a row changed.
func (r *quickPostRepository) UpdateSchedule(ctx context.Context, id, userID int64, scheduledAt time.Time) (bool, error) {
	query := `
		UPDATE quick_posts
		SET scheduled_at = $1,
			updated_at = $2
		WHERE id = $3 AND user_id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, scheduledAt, time.Now(), id, userID, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return n > 0, nil
}

func (r *quickPostRepository) Remove(ctx context.Context, id, userID int64) (bool, error) {
	query := `DELETE FROM quick_posts WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return n > 0, nil
}
