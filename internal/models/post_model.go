package models

import (
	"encoding/json"
	"time"
)

// GeneratedContent is the content blob produced by the AI generation flow.
// The schedule layer never inspects it beyond the primary text.
type GeneratedContent struct {
	Text       string   `json:"text"`
	Hashtags   []string `json:"hashtags,omitempty"`
	Variations []string `json:"variations,omitempty"`
}

type QuickPost struct {
	ID          int64           `db:"id" json:"id"`
	PublicID    string          `db:"public_id" json:"public_id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Platform    string          `db:"platform" json:"platform"`
	Content     json.RawMessage `db:"content" json:"content"`
	ScheduledAt time.Time       `db:"scheduled_at" json:"scheduled_at"`
	Status      string          `db:"status" json:"status"`
	MediaURL    *string         `db:"media_url" json:"media_url,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type CampaignPost struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	CampaignID   int64           `db:"campaign_id" json:"campaign_id"`
	CampaignName string          `db:"campaign_name" json:"campaign_name"`
	Platform     string          `db:"platform" json:"platform"`
	Content      json.RawMessage `db:"content" json:"content"`
	ScheduledAt  time.Time       `db:"scheduled_at" json:"scheduled_at"`
	Status       string          `db:"status" json:"status"`
	MediaURL     *string         `db:"media_url" json:"media_url,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// UnifiedPost is the merged read model over both post tables. ID is
// source-prefixed ("quick_42", "campaign_7") so the two namespaces
// cannot collide; (Source, SourceRowID) is the real key.
type UnifiedPost struct {
	ID           string          `json:"id"`
	Source       string          `json:"source"`
	SourceRowID  int64           `json:"-"`
	CampaignID   int64           `json:"campaign_id,omitempty"`
	CampaignName string          `json:"campaign_name,omitempty"`
	Platform     string          `json:"platform"`
	Content      json.RawMessage `json:"content"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	Status       string          `json:"status"`
	HasMedia     bool            `json:"has_media"`
	MediaURL     string          `json:"media_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

const (
	SourceQuickPost = "quick_post"
	SourceCampaign  = "campaign"
)

const (
	PostStatusScheduled = "scheduled"
	PostStatusPosted    = "posted"
	PostStatusFailed    = "failed"
)

const (
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformPinterest = "pinterest"
)
