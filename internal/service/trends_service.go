package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/notify"
	"github.com/postpilothq/postpilot/internal/repository"
	"github.com/postpilothq/postpilot/internal/transfer"
)

// TrendCostPerRequest is the fixed upstream cost of one grounded
// research call, used for the savings estimate.
const TrendCostPerRequest = 0.035

const trendQueryExcerptLen = 500

// TrendFetcher performs the actual (paid) research call on a cache miss.
type TrendFetcher interface {
	FetchTrends(ctx context.Context, query string) (*models.TrendResult, error)
}

type TrendService interface {
	FindTrendsWithCache(ctx context.Context, query string, fetcher TrendFetcher) (*transfer.TrendResearchResponse, error)
	GetCached(ctx context.Context, query string) (*models.TrendResult, bool)
	SetCache(ctx context.Context, query string, result *models.TrendResult, ttlHours int)
	Invalidate(ctx context.Context, query string) error
	GetStats(ctx context.Context) *transfer.CacheStats
	CalculateSavings(hitCount int64) float64
}

type trendService struct {
	tc       repository.TrendCacheRepository
	notifier *notify.Notifier
	ttlHours int
}

func NewTrendService(tc repository.TrendCacheRepository, notifier *notify.Notifier, ttlHours int) TrendService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &trendService{
		tc:       tc,
		notifier: notifier,
		ttlHours: ttlHours,
	}
}

// FindTrendsWithCache collapses near-duplicate research queries onto one
// upstream call. Cache-layer failures degrade to a miss and never block
// the research itself; fetcher failures propagate untouched.
func (s *trendService) FindTrendsWithCache(ctx context.Context, query string, fetcher TrendFetcher) (*transfer.TrendResearchResponse, error) {
	if cached, ok := s.GetCached(ctx, query); ok {
		return &transfer.TrendResearchResponse{Result: cached, FromCache: true}, nil
	}

	result, err := fetcher.FetchTrends(ctx, query)
	if err != nil {
		return nil, err
	}

	s.SetCache(ctx, query, result, s.ttlHours)

	return &transfer.TrendResearchResponse{Result: result, FromCache: false}, nil
}

func (s *trendService) GetCached(ctx context.Context, query string) (*models.TrendResult, bool) {
	entry, err := s.tc.GetActive(ctx, QueryHash(query))
	if err != nil {
		s.degraded("trend cache lookup failed", err)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	var result models.TrendResult
	if err := json.Unmarshal(entry.Payload, &result); err != nil {
		s.degraded("trend cache payload corrupt", err)
		return nil, false
	}

	return &result, true
}

// SetCache unconditionally replaces the stored result for the query.
// ttlHours is taken literally: zero or negative writes an already-expired
// entry, which reads as absent. The service-wide default lives on the
// constructor, not here. Write failures are logged and swallowed: a
// broken cache must never fail the feature that produced the result.
func (s *trendService) SetCache(ctx context.Context, query string, result *models.TrendResult, ttlHours int) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.degraded("trend cache marshal failed", err)
		return
	}

	now := time.Now()
	entry := &models.TrendCacheEntry{
		QueryHash: QueryHash(query),
		QueryText: truncate(NormalizeQuery(query), trendQueryExcerptLen),
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(ttlHours) * time.Hour),
	}

	if err := s.tc.Upsert(ctx, entry); err != nil {
		s.degraded("trend cache write failed", err)
	}
}

func (s *trendService) Invalidate(ctx context.Context, query string) error {
	return s.tc.Remove(ctx, QueryHash(query))
}

// GetStats is a diagnostics path: any storage error yields zeroed stats
// instead of an error.
func (s *trendService) GetStats(ctx context.Context) *transfer.CacheStats {
	stats, err := s.tc.Stats(ctx)
	if err != nil || stats == nil {
		if err != nil {
			s.degraded("trend cache stats failed", err)
		}
		return &transfer.CacheStats{}
	}

	stats.SavedUSD = s.CalculateSavings(stats.TotalHits)
	return stats
}

func (s *trendService) CalculateSavings(hitCount int64) float64 {
	if hitCount <= 0 {
		return 0
	}
	return float64(hitCount) * TrendCostPerRequest
}

func (s *trendService) degraded(msg string, err error) {
	slog.Info(msg + ": " + err.Error())
	if s.notifier != nil {
		s.notifier.Publish(notify.Event{
			Component: "trend_cache",
			Severity:  notify.SeverityWarning,
			Message:   msg,
			Err:       err,
		})
	}
}

// NormalizeQuery case-folds and collapses whitespace so trivially
// different spellings of the same research query share a cache key.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// QueryHash keys the cache by a digest of the normalized query, keeping
// key size bounded regardless of query length.
func QueryHash(query string) string {
	sum := sha256.Sum256([]byte(NormalizeQuery(query)))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
