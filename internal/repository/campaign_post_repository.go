package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
)

type CampaignPostRepository interface {
	Create(ctx context.Context, post *models.CampaignPost) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.CampaignPost, error)
	UpdateSchedule(ctx context.Context, id, userID int64, scheduledAt time.Time) (bool, error)
	Remove(ctx context.Context, id, userID int64) (bool, error)
}

type campaignPostRepository struct {
	db *sql.DB
}

func NewCampaignPostRepository(db *sql.DB) CampaignPostRepository {
	return &campaignPostRepository{db: db}
}

func (r *campaignPostRepository) Create(ctx context.Context, post *models.CampaignPost) (int64, error) {
	query := `
		INSERT INTO campaign_posts (user_id, campaign_id, campaign_name, platform, content, scheduled_at, status, media_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.CampaignID, post.CampaignName, post.Platform,
		post.Content, post.ScheduledAt, post.Status, post.MediaURL).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *campaignPostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.CampaignPost, error) {
	query := `SELECT id, user_id, campaign_id, campaign_name, platform, content, scheduled_at, status, media_url, created_at, updated_at
		FROM campaign_posts WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.CampaignPost
	for rows.Next() {
		var post models.CampaignPost
		err := rows.Scan(&post.ID, &post.UserID, &post.CampaignID, &post.CampaignName, &post.Platform,
			&post.Content, &post.ScheduledAt, &post.Status, &post.MediaURL, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (r *campaignPostRepository) UpdateSchedule(ctx context.Context, id, userID int64, scheduledAt time.Time) (bool, error) {
	query := `
		UPDATE campaign_posts
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

func (r *campaignPostRepository) Remove(ctx context.Context, id, userID int64) (bool, error) {
	query := `DELETE FROM campaign_posts WHERE id = $1 AND user_id = $2`
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
