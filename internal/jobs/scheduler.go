package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/robfig/cron/v3"
)

// ErrTaskIsRegistered is returned when a task name is registered twice.
var ErrTaskIsRegistered = errors.New("task is already registered")

// Task is one run of a scheduled job. ctx is cancelled when the scheduler stops.
type Task func(ctx context.Context)

// Scheduler runs named tasks on cron schedules. A run that is still in
// progress when the next one is due makes the scheduler skip that tick, and a
// panicking task is recovered and logged.
//
// Schedules use the six field cron syntax with seconds or descriptors such as
// "@every 4s". Intervals below one second are rounded up to one second.
//
// Example:
//
//	scheduler := jobs.NewScheduler(logger)
//	_ = scheduler.Register("heartbeat", "@every 10s", func(ctx context.Context) {
//	    logger.InfoContext(ctx, "alive")
//	})
//	scheduler.Start()
//	defer scheduler.Stop()
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	logger = logger.With("component", "scheduler")
	cronLog := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]cron.EntryID),
	}
}

// Register adds task under name. Tasks may be registered before or after Start.
func (s *Scheduler) Register(name, spec string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrTaskIsRegistered, name)
	}

	id, err := s.cron.AddFunc(spec, func() {
		task(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s with %q: %w", name, spec, err)
	}

	s.entries[name] = id
	s.logger.InfoContext(s.ctx, "task registered", "task", name, "schedule", spec)
	return nil
}

// Deregister removes the task. It reports whether the task was registered.
// A run already in progress is not interrupted.
func (s *Scheduler) Deregister(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return false
	}

	s.cron.Remove(id)
	delete(s.entries, name)
	s.logger.InfoContext(s.ctx, "task deregistered", "task", name)
	return true
}

// Registered returns the names of the registered tasks, sorted.
func (s *Scheduler) Registered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the context handed to running tasks and returns a context
// that is done once every running task has returned.
func (s *Scheduler) Stop() context.Context {
	done := s.cron.Stop()
	s.cancel()
	return done
}

// cronLogger routes cron's own logging to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
