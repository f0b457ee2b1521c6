package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/repository"
	"github.com/postpilothq/postpilot/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ScheduleService interface {
	GetUnifiedSchedule(ctx context.Context, userID int64, filters *transfer.ScheduleFilters) ([]*models.UnifiedPost, error)
	GetScheduleStats(ctx context.Context, userID int64) (*transfer.ScheduleStats, error)
	BulkReschedule(ctx context.Context, userID int64, req *transfer.BulkRescheduleRequest) (*transfer.BulkResult, error)
	BulkDelete(ctx context.Context, userID int64, targets []transfer.DeleteTarget) (*transfer.BulkResult, error)
	DeletePost(ctx context.Context, userID int64, id, source string) error
	CreateQuickPost(ctx context.Context, userID int64, pc *transfer.QuickPostCreation) (string, error)
	ScheduleCSV(posts []*models.UnifiedPost) []byte
}

type scheduleService struct {
	qp repository.QuickPostRepository
	cp repository.CampaignPostRepository
}

func NewScheduleService(qp repository.QuickPostRepository, cp repository.CampaignPostRepository) ScheduleService {
	return &scheduleService{
		qp: qp,
		cp: cp,
	}
}

// bulkConcurrency bounds parallel row mutations in the bulk operations.
const bulkConcurrency = 10

// GetUnifiedSchedule reads both post tables, tags every row with its
// source, applies the filters and returns one timeline sorted ascending
// by scheduled time. A failed read from either table fails the whole
// call: a silently truncated calendar is worse than an explicit error.
func (s *scheduleService) GetUnifiedSchedule(ctx context.Context, userID int64, filters *transfer.ScheduleFilters) ([]*models.UnifiedPost, error) {
	unified, err := s.loadUnified(ctx, userID)
	if err != nil {
		return nil, err
	}

	unified = applyFilters(unified, filters)

	sort.Slice(unified, func(i, j int) bool {
		return unified[i].ScheduledAt.Before(unified[j].ScheduledAt)
	})

	return unified, nil
}

func (s *scheduleService) loadUnified(ctx context.Context, userID int64) ([]*models.UnifiedPost, error) {
	quick, err := s.qp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading quick posts: %w", err)
	}

	campaign, err := s.cp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading campaign posts: %w", err)
	}

	unified := make([]*models.UnifiedPost, 0, len(quick)+len(campaign))
	for _, p := range quick {
		unified = append(unified, fromQuickPost(p))
	}
	for _, p := range campaign {
		unified = append(unified, fromCampaignPost(p))
	}
	return unified, nil
}

func fromQuickPost(p *models.QuickPost) *models.UnifiedPost {
	u := &models.UnifiedPost{
		ID:          fmt.Sprintf("quick_%d", p.ID),
		Source:      models.SourceQuickPost,
		SourceRowID: p.ID,
		Platform:    p.Platform,
		Content:     p.Content,
		ScheduledAt: p.ScheduledAt,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.MediaURL != nil && *p.MediaURL != "" {
		u.HasMedia = true
		u.MediaURL = *p.MediaURL
	}
	return u
}

func fromCampaignPost(p *models.CampaignPost) *models.UnifiedPost {
	u := &models.UnifiedPost{
		ID:           fmt.Sprintf("campaign_%d", p.ID),
		Source:       models.SourceCampaign,
		SourceRowID:  p.ID,
		CampaignID:   p.CampaignID,
		CampaignName: p.CampaignName,
		Platform:     p.Platform,
		Content:      p.Content,
		ScheduledAt:  p.ScheduledAt,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.MediaURL != nil && *p.MediaURL != "" {
		u.HasMedia = true
		u.MediaURL = *p.MediaURL
	}
	return u
}

func applyFilters(posts []*models.UnifiedPost, filters *transfer.ScheduleFilters) []*models.UnifiedPost {
	if filters == nil {
		return posts
	}

	platforms := toSet(filters.Platforms)
	statuses := toSet(filters.Statuses)
	sources := toSet(filters.Sources)

	filtered := posts[:0]
	for _, p := range posts {
		if platforms != nil && !platforms[p.Platform] {
			continue
		}
		if statuses != nil && !statuses[p.Status] {
			continue
		}
		if sources != nil && !sources[p.Source] {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// GetScheduleStats is always computed over the unfiltered set at call
// time; nothing is precomputed or cached.
func (s *scheduleService) GetScheduleStats(ctx context.Context, userID int64) (*transfer.ScheduleStats, error) {
	unified, err := s.loadUnified(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computeStats(unified, time.Now()), nil
}

func computeStats(posts []*models.UnifiedPost, now time.Time) *transfer.ScheduleStats {
	stats := &transfer.ScheduleStats{Total: len(posts)}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Monday-Sunday week containing now.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, p := range posts {
		if p.Status == models.PostStatusScheduled {
			stats.Scheduled++
		}
		at := p.ScheduledAt.In(now.Location())
		if !at.Before(dayStart) && at.Before(dayEnd) {
			stats.Today++
		}
		if !at.Before(weekStart) && at.Before(weekEnd) {
			stats.ThisWeek++
		}
	}
	return stats
}

// BulkReschedule moves every target independently. The batch never
// aborts early; the result carries aggregate counts only. Rows whose
// status left "scheduled" since the client loaded them count as failed.
func (s *scheduleService) BulkReschedule(ctx context.Context, userID int64, req *transfer.BulkRescheduleRequest) (*transfer.BulkResult, error) {
	if req == nil || len(req.Targets) == 0 {
		return &transfer.BulkResult{}, nil
	}

	newDate, err := time.Parse("2006-01-02", req.NewDate)
	if err != nil {
		err = fmt.Errorf("invalid new date format: %w", err)
		slog.Info(err.Error())
		return nil, err
	}

	var uniform time.Time
	if !req.PreserveTime {
		uniform, err = time.Parse("15:04", req.NewTime)
		if err != nil {
			err = fmt.Errorf("invalid new time format: %w", err)
			slog.Info(err.Error())
			return nil, err
		}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	result := &transfer.BulkResult{}

	semaphore := make(chan struct{}, bulkConcurrency)

	for _, target := range req.Targets {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(target transfer.RescheduleTarget) {
			defer wg.Done()
			defer func() { <-semaphore }()

			ok := s.rescheduleOne(ctx, userID, target, newDate, uniform, req.PreserveTime)

			mu.Lock()
			if ok {
				result.Success++
			} else {
				result.Failed++
			}
			mu.Unlock()
		}(target)
	}
	wg.Wait()

	return result, nil
}

func (s *scheduleService) rescheduleOne(ctx context.Context, userID int64, target transfer.RescheduleTarget, newDate, uniform time.Time, preserveTime bool) bool {
	rowID, err := parseUnifiedID(target.ID, target.Source)
	if err != nil {
		slog.Info(err.Error())
		return false
	}

	var hour, minute, sec int
	loc := time.Local
	if preserveTime {
		current, err := time.Parse(time.RFC3339, target.ScheduledAt)
		if err != nil {
			slog.Info(fmt.Sprintf("invalid current schedule for %s: %v", target.ID, err))
			return false
		}
		hour, minute, sec = current.Clock()
		loc = current.Location()
	} else {
		hour, minute, sec = uniform.Clock()
	}

	newAt := time.Date(newDate.Year(), newDate.Month(), newDate.Day(), hour, minute, sec, 0, loc)

	var changed bool
	switch target.Source {
	case models.SourceQuickPost:
		changed, err = s.qp.UpdateSchedule(ctx, rowID, userID, newAt)
	case models.SourceCampaign:
		changed, err = s.cp.UpdateSchedule(ctx, rowID, userID, newAt)
	default:
		slog.Info("unknown post source: " + target.Source)
		return false
	}

	if err != nil || !changed {
		return false
	}
	return true
}

// BulkDelete routes each target to its backing table. Same best-effort
// per-row contract as BulkReschedule.
func (s *scheduleService) BulkDelete(ctx context.Context, userID int64, targets []transfer.DeleteTarget) (*transfer.BulkResult, error) {
	if len(targets) == 0 {
		return &transfer.BulkResult{}, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	result := &transfer.BulkResult{}

	semaphore := make(chan struct{}, bulkConcurrency)

	for _, target := range targets {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(target transfer.DeleteTarget) {
			defer wg.Done()
			defer func() { <-semaphore }()

			ok := s.deleteOne(ctx, userID, target.ID, target.Source)

			mu.Lock()
			if ok {
				result.Success++
			} else {
				result.Failed++
			}
			mu.Unlock()
		}(target)
	}
	wg.Wait()

	return result, nil
}

func (s *scheduleService) deleteOne(ctx context.Context, userID int64, id, source string) bool {
	rowID, err := parseUnifiedID(id, source)
	if err != nil {
		slog.Info(err.Error())
		return false
	}

	var removed bool
	switch source {
	case models.SourceQuickPost:
		removed, err = s.qp.Remove(ctx, rowID, userID)
	case models.SourceCampaign:
		removed, err = s.cp.Remove(ctx, rowID, userID)
	default:
		slog.Info("unknown post source: " + source)
		return false
	}

	if err != nil || !removed {
		return false
	}
	return true
}

func (s *scheduleService) DeletePost(ctx context.Context, userID int64, id, source string) error {
	rowID, err := parseUnifiedID(id, source)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	switch source {
	case models.SourceQuickPost:
		_, err = s.qp.Remove(ctx, rowID, userID)
	case models.SourceCampaign:
		_, err = s.cp.Remove(ctx, rowID, userID)
	default:
		err = errors.New("unknown post source: " + source)
		slog.Info(err.Error())
	}
	return err
}

func (s *scheduleService) CreateQuickPost(ctx context.Context, userID int64, pc *transfer.QuickPostCreation) (string, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return "", err
	}
	if pc.Content == "" {
		err := errors.New("content cannot be empty")
		slog.Info(err.Error())
		return "", err
	}
	if !validPlatform(pc.Platform) {
		err := errors.New("unsupported platform: " + pc.Platform)
		slog.Info(err.Error())
		return "", err
	}

	scheduledAt, err := time.Parse("2006-01-02T15:04", pc.ScheduledAt)
	if err != nil {
		err = fmt.Errorf("invalid scheduled time format: %w", err)
		slog.Info(err.Error())
		return "", err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	content, err := json.Marshal(models.GeneratedContent{Text: pc.Content})
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	post := &models.QuickPost{
		PublicID:    publicID,
		UserID:      userID,
		Platform:    pc.Platform,
		Content:     content,
		ScheduledAt: scheduledAt,
		Status:      models.PostStatusScheduled,
	}
	if pc.MediaURL != "" {
		post.MediaURL = &pc.MediaURL
	}

	id, err := s.qp.Create(ctx, post)
	if err != nil {
		return "", fmt.Errorf("error creating post: %w", err)
	}

	return fmt.Sprintf("quick_%d", id), nil
}

func validPlatform(platform string) bool {
	switch platform {
	case models.PlatformTwitter, models.PlatformLinkedIn, models.PlatformInstagram,
		models.PlatformTikTok, models.PlatformPinterest:
		return true
	}
	return false
}

// ScheduleCSV flattens an already-loaded schedule into CSV. Pure
// formatting, no store access.
func (s *scheduleService) ScheduleCSV(posts []*models.UnifiedPost) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"platform", "content", "scheduled_at", "status", "source"})
	for _, p := range posts {
		w.Write([]string{
			p.Platform,
			contentExcerpt(p.Content, 80),
			p.ScheduledAt.Format(time.RFC3339),
			p.Status,
			p.Source,
		})
	}
	w.Flush()

	return buf.Bytes()
}

func contentExcerpt(raw json.RawMessage, max int) string {
	var content models.GeneratedContent
	text := string(raw)
	if err := json.Unmarshal(raw, &content); err == nil && content.Text != "" {
		text = content.Text
	}

	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return text
}

func parseUnifiedID(id, source string) (int64, error) {
	raw := id
	switch source {
	case models.SourceQuickPost:
		raw = strings.TrimPrefix(raw, "quick_")
	case models.SourceCampaign:
		raw = strings.TrimPrefix(raw, "campaign_")
	}

	rowID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q: %w", id, err)
	}
	return rowID, nil
}
