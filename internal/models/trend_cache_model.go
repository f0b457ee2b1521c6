package models

import (
	"encoding/json"
	"time"
)

type TrendCacheEntry struct {
	QueryHash string          `db:"query_hash"`
	QueryText string          `db:"query_text"`
	Payload   json.RawMessage `db:"payload"`
	HitCount  int64           `db:"hit_count"`
	CreatedAt time.Time       `db:"created_at"`
	ExpiresAt time.Time       `db:"expires_at"`
}

type TrendResult struct {
	Summary  string   `json:"summary"`
	Trends   []Trend  `json:"trends"`
	Keywords []string `json:"keywords"`
	Sources  []string `json:"sources"`
}

type Trend struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Momentum    string `json:"momentum"` // rising, stable, declining
}
