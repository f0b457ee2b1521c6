package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/postpilothq/postpilot/internal/repository"
)

// MaintenanceJob removes physically-expired cache and PKCE rows. Purely
// housekeeping: reads already treat expired rows as absent, so a missed
// run costs disk, not correctness.
type MaintenanceJob struct {
	tc repository.TrendCacheRepository
	pk repository.PKCERepository
}

func NewMaintenanceJob(tc repository.TrendCacheRepository, pk repository.PKCERepository) *MaintenanceJob {
	return &MaintenanceJob{
		tc: tc,
		pk: pk,
	}
}

func (j *MaintenanceJob) PurgeExpired() {
	ctx := context.Background()

	n, err := j.tc.PurgeExpired(ctx)
	if err != nil {
		slog.Info("trend cache purge failed: " + err.Error())
	} else if n > 0 {
		slog.Info(fmt.Sprintf("purged %d expired trend cache entries", n))
	}

	n, err = j.pk.PurgeExpired(ctx)
	if err != nil {
		slog.Info("pkce purge failed: " + err.Error())
	} else if n > 0 {
		slog.Info(fmt.Sprintf("purged %d expired pkce verifiers", n))
	}
}
