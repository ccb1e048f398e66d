// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// A single Scheduler owns the cron instance; jobs register and deregister
// named tasks on it.
//
// # Available Jobs
//
// 1. CourierMovementJob - every MOVEMENT_INTERVAL (4s by default) drifts every
// courier that is not offline by a small random offset
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(moveCouriersHandler, 4*time.Second, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll(shutdownCtx)
//
// # Error Handling
//
// - Tick failures are logged and the next tick runs normally
// - Overlapping ticks are skipped, panics are recovered
package jobs
