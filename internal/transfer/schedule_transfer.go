package transfer

import "github.com/golang-jwt/jwt/v5"

// ScheduleFilters narrows the unified schedule. Every provided dimension
// is ANDed; an empty slice leaves that dimension unfiltered.
type ScheduleFilters struct {
	Platforms []string `json:"platforms"`
	Statuses  []string `json:"statuses"`
	Sources   []string `json:"sources"`
}

type ScheduleStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
}

type RescheduleTarget struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	ScheduledAt string `json:"scheduled_at"`
}

type BulkRescheduleRequest struct {
	Targets      []RescheduleTarget `json:"targets"`
	NewDate      string             `json:"new_date"` // 2006-01-02
	NewTime      string             `json:"new_time"` // 15:04, ignored when PreserveTime
	PreserveTime bool               `json:"preserve_time"`
}

type DeleteTarget struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

type BulkDeleteRequest struct {
	Targets []DeleteTarget `json:"targets"`
}

// BulkResult reports best-effort batch outcomes as counts only.
type BulkResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type QuickPostCreation struct {
	Platform    string `json:"platform"`
	Content     string `json:"content"`
	ScheduledAt string `json:"scheduled_at"`
	MediaURL    string `json:"media_url"`
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
