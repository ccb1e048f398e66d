package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lastmile/internal/core/application/usecases/commands"
)

// DefaultMovementInterval is the period of the movement simulation.
const DefaultMovementInterval = 4 * time.Second

// CourierMovementTaskName identifies the movement task in the Scheduler.
const CourierMovementTaskName = "courier_movement"

// CourierMover runs one movement tick.
type CourierMover interface {
	Handle(ctx context.Context, cmd commands.MoveCouriersCommand) error
}

// CourierMovementJob manages the scheduled movement of couriers.
// Every interval each courier that is not offline drifts a little.
type CourierMovementJob struct {
	handler  CourierMover
	interval time.Duration
	logger   *slog.Logger
}

// NewCourierMovementJob creates a new job for moving couriers.
// A non positive interval falls back to DefaultMovementInterval.
func NewCourierMovementJob(handler CourierMover, interval time.Duration, logger *slog.Logger) *CourierMovementJob {
	if interval <= 0 {
		interval = DefaultMovementInterval
	}

	return &CourierMovementJob{
		handler:  handler,
		interval: interval,
		logger:   logger.With("component", "courier_movement_job"),
	}
}

// Schedule returns the cron spec of the job.
func (j *CourierMovementJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run executes one tick. Failures are logged; the next tick runs anyway.
func (j *CourierMovementJob) Run(ctx context.Context) {
	cmd := commands.NewMoveCouriersCommand()

	if err := j.handler.Handle(ctx, cmd); err != nil {
		if ctx.Err() != nil {
			return
		}
		j.logger.ErrorContext(ctx, "Courier movement job failed", "error", err)
	}
}

// Start registers the job with the scheduler.
func (j *CourierMovementJob) Start(scheduler *Scheduler) error {
	if err := scheduler.Register(CourierMovementTaskName, j.Schedule(), j.Run); err != nil {
		return err
	}

	j.logger.InfoContext(context.Background(), "Courier movement job started", "interval", j.interval.String())
	return nil
}

// Stop deregisters the job. A tick in progress completes.
func (j *CourierMovementJob) Stop(scheduler *Scheduler) {
	if scheduler.Deregister(CourierMovementTaskName) {
		j.logger.InfoContext(context.Background(), "Courier movement job stopped")
	}
}
