package transfer

import (
	"time"

	"github.com/postpilothq/postpilot/internal/models"
)

type TrendResearchRequest struct {
	Query string `json:"query"`
}

type TrendResearchResponse struct {
	Result    *models.TrendResult `json:"result"`
	FromCache bool                `json:"from_cache"`
}

type CacheStats struct {
	TotalEntries int64      `json:"total_entries"`
	TotalHits    int64      `json:"total_hits"`
	OldestEntry  *time.Time `json:"oldest_entry,omitempty"`
	NewestEntry  *time.Time `json:"newest_entry,omitempty"`
	SavedUSD     float64    `json:"saved_usd"`
}

type CacheInvalidateRequest struct {
	Query string `json:"query"`
}
