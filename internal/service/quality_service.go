package service

import (
	"strings"

	"github.com/postpilothq/postpilot/internal/transfer"
)

type QualityService interface {
	Analyze(content string) *transfer.QualityReport
}

type qualityService struct{}

func NewQualityService() QualityService {
	return &qualityService{}
}

var positiveWords = map[string]bool{
	"great": true, "amazing": true, "love": true, "excited": true, "best": true,
	"happy": true, "win": true, "success": true, "awesome": true, "beautiful": true,
	"excellent": true, "fantastic": true, "proud": true, "thrilled": true,
}

var negativeWords = map[string]bool{
	"bad": true, "worst": true, "hate": true, "fail": true, "problem": true,
	"terrible": true, "awful": true, "sad": true, "angry": true, "disappointing": true,
	"broken": true, "wrong": true,
}

// Analyze scores raw text with cheap heuristics. It operates purely on
// the input and always returns a report.
func (s *qualityService) Analyze(content string) *transfer.QualityReport {
	report := &transfer.QualityReport{Suggestions: []string{}}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		report.Readability = "unknown"
		report.Sentiment = "neutral"
		report.Suggestions = append(report.Suggestions, "Content is empty")
		return report
	}

	words := strings.Fields(trimmed)
	sentences := countSentences(trimmed)

	avgWordsPerSentence := float64(len(words)) / float64(sentences)
	switch {
	case avgWordsPerSentence <= 12:
		report.Readability = "easy"
	case avgWordsPerSentence <= 20:
		report.Readability = "medium"
	default:
		report.Readability = "hard"
		report.Suggestions = append(report.Suggestions, "Break long sentences into shorter ones")
	}

	positives, negatives := 0, 0
	for _, w := range words {
		clean := strings.ToLower(strings.Trim(w, ".,!?;:#@"))
		if positiveWords[clean] {
			positives++
		}
		if negativeWords[clean] {
			negatives++
		}
	}
	switch {
	case positives > negatives:
		report.Sentiment = "positive"
	case negatives > positives:
		report.Sentiment = "negative"
	default:
		report.Sentiment = "neutral"
	}

	score := 50
	if report.Readability == "easy" {
		score += 20
	} else if report.Readability == "medium" {
		score += 10
	}
	if report.Sentiment == "positive" {
		score += 15
	} else if report.Sentiment == "negative" {
		score -= 10
	}

	if len(words) < 5 {
		score -= 10
		report.Suggestions = append(report.Suggestions, "Very short posts tend to underperform; add context")
	}
	if !strings.Contains(trimmed, "#") {
		report.Suggestions = append(report.Suggestions, "Consider adding a hashtag for reach")
	}
	if !strings.ContainsAny(trimmed, "?!") {
		report.Suggestions = append(report.Suggestions, "A question or call to action can improve engagement")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	report.Score = score

	return report
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}
