package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs Jobs on cron specs. Overlapping runs of the same job are
// skipped, and Stop waits for running jobs.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Register adds job under name. spec accepts the standard five-field cron
// syntax and descriptors such as "@every 1h".
func (s *Scheduler) Register(name, spec string, timeout time.Duration, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("❌ [Scheduler] Job failed", "job", name, "duration", time.Since(start), "error", err)
			return
		}
		s.logger.Debug("⏱️ [Scheduler] Job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}

	s.logger.Info("📅 [Scheduler] Job registered", "job", name, "spec", spec)
	return nil
}

// Start begins firing jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule, cancels running jobs and waits up to timeout.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.logger.Info("🛑 [Scheduler] Stopping...")
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.logger.Info("✅ [Scheduler] Stopped")
	case <-time.After(timeout):
		s.logger.Warn("⚠️ [Scheduler] Stop timeout exceeded", "timeout", timeout)
	}
}
