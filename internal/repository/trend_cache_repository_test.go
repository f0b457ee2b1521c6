package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/postpilothq/postpilot/internal/models"
)

func TestGetActiveHitIncrementsInOneStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	payload, _ := json.Marshal(map[string]string{"summary": "x"})

	mock.ExpectQuery(`UPDATE trend_cache\s+SET hit_count = hit_count \+ 1\s+WHERE query_hash = \$1 AND expires_at > NOW\(\)`).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows(
			[]string{"query_hash", "query_text", "payload", "hit_count", "created_at", "expires_at"}).
			AddRow("abc123", "ai trends", payload, int64(5), now, now.Add(time.Hour)))

	repo := NewTrendCacheRepository(db)
	entry, err := repo.GetActive(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected a live entry")
	}
	if entry.HitCount != 5 {
		t.Errorf("expected post-increment hit count 5, got %d", entry.HitCount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetActiveExpiredIsAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// The WHERE clause filters expired rows, so the driver sees no rows.
	mock.ExpectQuery(`UPDATE trend_cache`).
		WithArgs("stale").
		WillReturnRows(sqlmock.NewRows(
			[]string{"query_hash", "query_text", "payload", "hit_count", "created_at", "expires_at"}))

	repo := NewTrendCacheRepository(db)
	entry, err := repo.GetActive(context.Background(), "stale")
	if err != nil {
		t.Fatalf("expired entry must not be an error: %v", err)
	}
	if entry != nil {
		t.Fatal("expired entry must read as absent")
	}
}

func TestUpsertResetsHitCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	payload, _ := json.Marshal(map[string]string{"summary": "x"})

	mock.ExpectExec(`INSERT INTO trend_cache .* ON CONFLICT \(query_hash\) DO UPDATE`).
		WithArgs("abc123", "ai trends", payload, now, now.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTrendCacheRepository(db)
	err = repo.Upsert(context.Background(), &models.TrendCacheEntry{
		QueryHash: "abc123",
		QueryText: "ai trends",
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStatsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(hit_count\), 0\), MIN\(created_at\), MAX\(created_at\) FROM trend_cache`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum", "min", "max"}).
			AddRow(int64(0), int64(0), nil, nil))

	repo := NewTrendCacheRepository(db)
	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 0 || stats.TotalHits != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if stats.OldestEntry != nil || stats.NewestEntry != nil {
		t.Error("expected nil bounds for empty table")
	}
}

func TestStatsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("permission denied"))

	repo := NewTrendCacheRepository(db)
	if _, err := repo.Stats(context.Background()); err == nil {
		t.Fatal("expected storage error to surface from the repository")
	}
}

func TestPurgeExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM trend_cache WHERE expires_at <= \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewTrendCacheRepository(db)
	n, err := repo.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 purged rows, got %d", n)
	}
}
