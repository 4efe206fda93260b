// Package scheduler runs the background jobs of the API on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs jobs on cron schedules. Overlapping runs of the same job are
// skipped.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
	jobs map[string]Job
}

// New creates a scheduler evaluating schedules in the given IANA timezone.
func New(timezone string) (*Scheduler, error) {
	loc := time.UTC
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:  ctx,
		stop: cancel,
		jobs: make(map[string]Job),
	}, nil
}

// AddJob registers job under a standard five-field cron expression or a
// descriptor such as "@every 10m".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	slog.Info("Scheduled job", "job", job.Name(), "schedule", schedule)
	return nil
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop stops the scheduler, cancels running jobs and waits for them to return
// or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	s.stop()

	select {
	case <-done:
		slog.Info("Scheduler stopped")
	case <-ctx.Done():
		slog.Warn("Scheduler stop timed out", "error", ctx.Err())
	}
}

// RunNow runs a registered job immediately in the calling goroutine.
func (s *Scheduler) RunNow(name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	return s.run(job)
}

func (s *Scheduler) run(job Job) error {
	start := time.Now()
	slog.Info("Running job", "job", job.Name())

	if err := job.Run(s.ctx); err != nil {
		slog.Error("Job failed", "job", job.Name(), "error", err, "duration", time.Since(start))
		return err
	}

	slog.Info("Job completed", "job", job.Name(), "duration", time.Since(start))
	return nil
}
