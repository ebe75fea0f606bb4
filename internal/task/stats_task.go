package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"store_rating_v1/internal/api/dto"
)

// StatsSource platform counters
type StatsSource interface {
	Get(ctx context.Context) (*dto.StatsResponse, error)
}

// StatsReporter periodically logs platform statistics
type StatsReporter struct {
	source  StatsSource
	log     logrus.FieldLogger
	Cron    *cron.Cron
	timeout time.Duration
}

// NewStatsReporter creates the reporter; schedules use the seconds field.
func NewStatsReporter(source StatsSource, log logrus.FieldLogger) *StatsReporter {
	return &StatsReporter{
		source:  source,
		log:     log.WithField("task", "stats"),
		Cron:    cron.New(cron.WithSeconds()),
		timeout: time.Minute,
	}
}

// Start runs Execute on a seconds-precision cron schedule (e.g. "0 0 * * * *"). An empty schedule disables the task.
func (t *StatsReporter) Start(schedule string) error {
	if schedule == "" {
		t.log.Info("stats reporter disabled")
		return nil
	}

	_, err := t.Cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		t.Execute(ctx)
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	t.log.WithField("schedule", schedule).Info("stats reporter started")
	return nil
}

// Stop waits for a running Execute to finish or ctx to expire.
func (t *StatsReporter) Stop(ctx context.Context) {
	select {
	case <-t.Cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Execute logs one snapshot of the counters.
func (t *StatsReporter) Execute(ctx context.Context) {
	stats, err := t.source.Get(ctx)
	if err != nil {
		t.log.WithError(err).Error("collect stats")
		return
	}

	t.log.WithFields(logrus.Fields{
		"total_users":   stats.TotalUsers,
		"total_stores":  stats.TotalStores,
		"total_ratings": stats.TotalRatings,
	}).Info("platform stats")
}
