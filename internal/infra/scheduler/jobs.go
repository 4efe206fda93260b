package scheduler

import (
	"context"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/application/usecase/digest"
)

// DigestJob sends the monthly team digest.
type DigestJob struct {
	useCase *digest.SendMonthlyDigestUseCase
	clock   adapter.Clock
}

// NewDigestJob creates a new DigestJob.
func NewDigestJob(useCase *digest.SendMonthlyDigestUseCase, clock adapter.Clock) *DigestJob {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &DigestJob{useCase: useCase, clock: clock}
}

// Name implements Job.
func (j *DigestJob) Name() string { return "monthly_digest" }

// Run implements Job.
func (j *DigestJob) Run(ctx context.Context) error {
	_, err := j.useCase.Execute(ctx, digest.SendMonthlyDigestInput{Now: j.clock.Now()})
	return err
}

// Cleaner is anything that drops idle state, such as the rate limiter.
type Cleaner interface {
	Cleanup()
}

// CleanupJob periodically calls Cleanup on a Cleaner.
type CleanupJob struct {
	name    string
	cleaner Cleaner
}

// NewCleanupJob creates a new CleanupJob.
func NewCleanupJob(name string, cleaner Cleaner) *CleanupJob {
	return &CleanupJob{name: name, cleaner: cleaner}
}

// Name implements Job.
func (j *CleanupJob) Name() string { return j.name }

// Run implements Job.
func (j *CleanupJob) Run(_ context.Context) error {
	j.cleaner.Cleanup()
	return nil
}
