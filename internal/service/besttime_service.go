package service

import (
	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type BestTimeService interface {
	SuggestionsFor(platform string) []transfer.TimeSuggestion
}

type bestTimeService struct{}

func NewBestTimeService() BestTimeService {
	return &bestTimeService{}
}

// Ranked per-platform posting windows. Static lookup, best first.
var bestTimes = map[string][]transfer.TimeSuggestion{
	models.PlatformTwitter: {
		{Day: "Wednesday", Time: "09:00", Reason: "Midweek morning commute peak"},
		{Day: "Tuesday", Time: "12:00", Reason: "Lunchtime scroll"},
		{Day: "Friday", Time: "15:00", Reason: "Winding-down engagement bump"},
	},
	models.PlatformLinkedIn: {
		{Day: "Tuesday", Time: "08:00", Reason: "Start-of-day professional check-in"},
		{Day: "Wednesday", Time: "12:00", Reason: "Midweek lunch browsing"},
		{Day: "Thursday", Time: "17:00", Reason: "End-of-day industry reading"},
	},
	models.PlatformInstagram: {
		{Day: "Monday", Time: "11:00", Reason: "Late-morning engagement peak"},
		{Day: "Wednesday", Time: "14:00", Reason: "Afternoon browsing window"},
		{Day: "Sunday", Time: "19:00", Reason: "Weekend evening leisure scrolling"},
	},
	models.PlatformTikTok: {
		{Day: "Tuesday", Time: "19:00", Reason: "Prime-time short-video hours"},
		{Day: "Thursday", Time: "21:00", Reason: "Late-evening viral window"},
		{Day: "Saturday", Time: "11:00", Reason: "Weekend brunch-hour browsing"},
	},
	models.PlatformPinterest: {
		{Day: "Saturday", Time: "20:00", Reason: "Weekend evening planning sessions"},
		{Day: "Sunday", Time: "14:00", Reason: "Weekend project research"},
		{Day: "Friday", Time: "15:00", Reason: "Pre-weekend inspiration searches"},
	},
}

func (s *bestTimeService) SuggestionsFor(platform string) []transfer.TimeSuggestion {
	return bestTimes[platform]
}
