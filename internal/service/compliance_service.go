package service

import (
	"fmt"
	"strings"

	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/transfer"
)

// PlatformRules are the structural posting limits enforced client-side
// before anything reaches the platform APIs.
type PlatformRules struct {
	MaxCharacters int
	MaxHashtags   int
	MaxMediaCount int
}

var platformRules = map[string]PlatformRules{
	models.PlatformTwitter:   {MaxCharacters: 280, MaxHashtags: 5, MaxMediaCount: 4},
	models.PlatformLinkedIn:  {MaxCharacters: 3000, MaxHashtags: 10, MaxMediaCount: 9},
	models.PlatformInstagram: {MaxCharacters: 2200, MaxHashtags: 30, MaxMediaCount: 10},
	models.PlatformTikTok:    {MaxCharacters: 2200, MaxHashtags: 10, MaxMediaCount: 1},
	models.PlatformPinterest: {MaxCharacters: 500, MaxHashtags: 8, MaxMediaCount: 1},
}

type ComplianceService interface {
	Validate(content, platform string, mediaCount int) *transfer.ComplianceResult
	RulesFor(platform string) (PlatformRules, bool)
}

type complianceService struct{}

func NewComplianceService() ComplianceService {
	return &complianceService{}
}

// Validate never fails; it only reports violations. Unknown platforms
// produce a single error entry rather than a panic or a pass.
func (s *complianceService) Validate(content, platform string, mediaCount int) *transfer.ComplianceResult {
	result := &transfer.ComplianceResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	rules, ok := platformRules[platform]
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported platform %q", platform))
		return result
	}

	length := len([]rune(content))
	if length > rules.MaxCharacters {
		result.Errors = append(result.Errors,
			fmt.Sprintf("content is %d characters, limit for %s is %d", length, platform, rules.MaxCharacters))
	} else if length > rules.MaxCharacters*9/10 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("content is close to the %d character limit", rules.MaxCharacters))
	}

	hashtags := countHashtags(content)
	if hashtags > rules.MaxHashtags {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d hashtags exceed the limit of %d for %s", hashtags, rules.MaxHashtags, platform))
	}

	if mediaCount > rules.MaxMediaCount {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d media attachments exceed the limit of %d for %s", mediaCount, rules.MaxMediaCount, platform))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (s *complianceService) RulesFor(platform string) (PlatformRules, bool) {
	rules, ok := platformRules[platform]
	return rules, ok
}

func countHashtags(content string) int {
	count := 0
	for _, word := range strings.Fields(content) {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			count++
		}
	}
	return count
}
