package transfer

type FailedPostNotification struct {
	PostID       string `json:"postId"`
	Platform     string `json:"platform"`
	Content      string `json:"content"`
	ScheduledAt  string `json:"scheduledAt"`
	ErrorMessage string `json:"errorMessage"`
	UserEmail    string `json:"userEmail"`
}

type TokenExpirationNotification struct {
	UserID    string `json:"userId"`
	Platform  string `json:"platform"`
	UserEmail string `json:"userEmail"`
}

type LinkPreviewRequest struct {
	URL string `json:"url"`
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Domain      string `json:"domain"`
	Error       bool   `json:"error,omitempty"`
}
