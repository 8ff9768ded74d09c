package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ledgerdesk/ledgerdesk/internal/analytics"
)

// AnalyticsWarmupJob rebuilds the cached dashboard summary and yearly
// reports so the first request after an invalidation does not pay the
// aggregation cost.
type AnalyticsWarmupJob struct {
	Analytics *analytics.Service
	Cache     *analytics.Cache
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewAnalyticsWarmupJob constructs the warmup job.
func NewAnalyticsWarmupJob(svc *analytics.Service, cache *analytics.Cache, logger *slog.Logger) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{Analytics: svc, Cache: cache, Logger: logger, clock: time.Now}
}

// Handle processes TaskAnalyticsWarmup tasks.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload AnalyticsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	now := j.clock()
	year := payload.Year
	if year == 0 {
		year = now.Year()
	}

	if j.Cache != nil {
		if err := j.Cache.Bump(ctx); err != nil {
			j.Logger.Warn("analytics warmup: bump cache version", slog.Any("error", err))
		}
	}

	if _, err := j.Analytics.Dashboard(ctx, analytics.DefaultWindow(now)); err != nil {
		j.Logger.Error("analytics warmup: dashboard", slog.Any("error", err))
		return err
	}
	if _, err := j.Analytics.OrdersYearly(ctx, year); err != nil {
		j.Logger.Error("analytics warmup: orders yearly", slog.Int("year", year), slog.Any("error", err))
		return err
	}
	if _, err := j.Analytics.InvoicesYearly(ctx, year); err != nil {
		j.Logger.Error("analytics warmup: invoices yearly", slog.Int("year", year), slog.Any("error", err))
		return err
	}

	j.Logger.Info("analytics warmup complete", slog.Int("year", year))
	return nil
}
