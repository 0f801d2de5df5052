package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
)

// Job fires once per calendar day at a fixed wall-clock time.
type Job struct {
	Name string
	At   config.TimeOfDay
	Fn   func(ctx context.Context) error
}

// Scheduler runs daily wall-clock jobs until stopped. It owns its jobs,
// context, and goroutines; there is no package-level state. A slot that
// passes while the process is down is skipped, never backfilled.
type Scheduler struct {
	jobs   []Job
	clock  clock.Clock
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new daily scheduler.
func NewScheduler(clk clock.Clock) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		clock:  clk,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job to fire daily at the given time.
func (s *Scheduler) AddJob(name string, at config.TimeOfDay, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name: name,
		At:   at,
		Fn:   fn,
	})
	slog.Info("Cron job registered", "name", name, "at", at.String())
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob sleeps until the job's next daily slot, fires, and reschedules.
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		now := s.clock.Now()
		next := nextRun(now, job.At)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(job)
		}
	}
}

// nextRun returns the next occurrence of at strictly after now. A slot
// earlier today that has already passed rolls over to tomorrow.
func nextRun(now time.Time, at config.TimeOfDay) time.Time {
	next := at.On(now)
	if !next.After(now) {
		next = at.On(now.AddDate(0, 0, 1))
	}
	return next
}

// executeJob executes a job and logs results. A panic or error in one
// firing is confined to that firing; the loop continues to the next slot.
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	defer func() {
		if p := recover(); p != nil {
			slog.Error("Cron job panicked", "name", job.Name, "panic", p, "duration", time.Since(start))
		}
	}()

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
