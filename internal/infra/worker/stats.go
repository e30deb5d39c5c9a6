// Package worker runs the scheduled background jobs of the journal API.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"journal-api/internal/handler/http/respond"
	"journal-api/internal/observability/metrics"
)

// Counter is satisfied by *journal.Service.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsJob refreshes the journals_total gauge from the store.
type StatsJob struct {
	Counter Counter
	Metrics *WorkerMetrics
	Logger  *slog.Logger
	// Timeout bounds a single run. Zero means 10s.
	Timeout time.Duration
}

// Run counts journals once. Failures are logged and recorded, never returned:
// the gauge keeps its last value until the next run succeeds.
func (j *StatsJob) Run() {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	start := time.Now()
	j.Metrics.RecordJobRun(StatusStarted)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := j.Counter.Count(ctx)
	j.Metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		j.Metrics.RecordJobRun(StatusFailure)
		logger.Error("stats job failed", slog.String("error", respond.SanitizeError(err)))
		return
	}

	metrics.UpdateJournalsTotal(n)
	j.Metrics.RecordJobRun(StatusSuccess)
	j.Metrics.RecordLastSuccess()
	logger.Debug("stats job completed", slog.Int64("journals", n))
}

// Scheduler runs jobs on cron schedules until its context ends.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler builds a scheduler using parser for every schedule.
func NewScheduler(parser cron.ScheduleParser, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// Add registers job on schedule.
func (s *Scheduler) Add(schedule string, job cron.Job) error {
	if schedule == "" {
		return errors.New("empty cron schedule")
	}
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("add cron job %q: %w", schedule, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}
