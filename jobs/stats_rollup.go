package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/storepilot/storepilot/internal/stats"
)

// StatsRollupJob accumulates a day of orders into store_stats.
type StatsRollupJob struct {
	service *stats.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewStatsRollupJob constructs the rollup job.
func NewStatsRollupJob(service *stats.Service, logger *slog.Logger) *StatsRollupJob {
	return &StatsRollupJob{service: service, logger: logger, now: time.Now}
}

// Handle processes TaskStatsRollup tasks.
func (j *StatsRollupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload StatsRollupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	day := j.now().UTC().AddDate(0, 0, -1)
	if payload.Day != "" {
		parsed, err := time.Parse("2006-01-02", payload.Day)
		if err != nil {
			if j.logger != nil {
				j.logger.Error("stats rollup: bad day", slog.String("day", payload.Day))
			}
			return asynq.SkipRetry
		}
		day = parsed
	}

	buckets, err := j.service.Rollup(ctx, day)
	if err != nil {
		if j.logger != nil {
			j.logger.Error("stats rollup failed", slog.Any("error", err))
		}
		return err
	}
	if j.logger != nil {
		j.logger.Info("stats rollup complete",
			slog.String("day", day.Format("2006-01-02")),
			slog.Int64("buckets", buckets))
	}
	return nil
}
