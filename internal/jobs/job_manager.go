package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	scheduler          *Scheduler
	courierMovementJob *CourierMovementJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	moveCouriersHandler CourierMover,
	movementInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduler:          NewScheduler(logger),
		courierMovementJob: NewCourierMovementJob(moveCouriersHandler, movementInterval, logger),
	}
}

// StartAll registers all jobs and starts the scheduler.
// Returns an error if any job fails to register.
func (jm *JobManager) StartAll() error {
	if err := jm.courierMovementJob.Start(jm.scheduler); err != nil {
		return fmt.Errorf("failed to start courier movement job: %w", err)
	}

	jm.scheduler.Start()
	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) error {
	jm.courierMovementJob.Stop(jm.scheduler)

	select {
	case <-jm.scheduler.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
