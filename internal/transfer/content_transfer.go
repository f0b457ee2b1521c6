package transfer

type ContentValidationRequest struct {
	Content    string `json:"content"`
	Platform   string `json:"platform"`
	MediaCount int    `json:"media_count"`
}

type ComplianceResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type QualityRequest struct {
	Content string `json:"content"`
}

type QualityReport struct {
	Score       int      `json:"score"`
	Readability string   `json:"readability"`
	Sentiment   string   `json:"sentiment"`
	Suggestions []string `json:"suggestions"`
}

type TimeSuggestion struct {
	Day    string `json:"day"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}
