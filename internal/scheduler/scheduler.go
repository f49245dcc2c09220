package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amishk599/jobwatch/internal/runner"
)

// Scheduler owns the daemon loop: ticks on an interval and runs one check
// cycle per tick. Cycles never overlap; a slow cycle simply delays the next
// tick's work.
type Scheduler struct {
	runner   *runner.Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs the given runner at the interval.
func NewScheduler(r *runner.Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   r,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful
// shutdown). Cycle failures are logged and the loop keeps going; the next
// tick is the retry.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"scope", s.runner.Scope,
	)

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.runner.Run(ctx); err != nil {
		s.logger.Error("check cycle failed",
			"scope", s.runner.Scope,
			"error", err,
		)
	}
}
