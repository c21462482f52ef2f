package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
)

const (
	stateRetentionJobName = "state-retention"
	defaultStateRetention = 30 * 24 * time.Hour
)

type StateRetentionJobParams struct {
	Logger    *logger.Logger
	Store     statePurger
	Metrics   *metrics.CronJobMetrics
	Retention time.Duration
}

type statePurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewStateRetentionJob deletes persisted shopper state (carts, favorites, chats)
// that has not been written within the retention window.
func NewStateRetentionJob(params StateRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("state store required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultStateRetention
	}
	return &stateRetentionJob{
		logg:      params.Logger,
		store:     params.Store,
		metrics:   params.Metrics,
		retention: retention,
		now:       time.Now,
	}, nil
}

type stateRetentionJob struct {
	logg      *logger.Logger
	store     statePurger
	metrics   *metrics.CronJobMetrics
	retention time.Duration
	now       func() time.Time
}

func (j *stateRetentionJob) Name() string { return stateRetentionJobName }

func (j *stateRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("state retention: %w", err)
	}
	j.metrics.AddAffected(j.Name(), deleted)

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":          cutoff,
		"retention_hours": int(j.retention.Hours()),
		"rows_deleted":    deleted,
	})
	j.logg.Info(logCtx, "state retention complete")
	return nil
}
