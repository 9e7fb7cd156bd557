// internal/bridge/supervisor.go
package bridge

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/tamzrod/ledbridge/internal/clock"
	"github.com/tamzrod/ledbridge/internal/metrics"
	"github.com/tamzrod/ledbridge/internal/status"
)

// RunFunc is one run of the inner loop.
type RunFunc func(ctx context.Context) error

// Supervisor restarts the inner loop after every failure.
//
// HARD INVARIANT: the restart policy is a fixed delay with unbounded
// retries. The delay MUST NOT grow.
type Supervisor struct {
	run     RunFunc
	backoff *backoff.ConstantBackOff
	tracker *status.Tracker
	clock   clock.Clock
	logger  *slog.Logger
}

// NewSupervisor wraps run. tracker may be nil.
func NewSupervisor(run RunFunc, delay time.Duration, tracker *status.Tracker, c clock.Clock, logger *slog.Logger) *Supervisor {
	if c == nil {
		c = clock.Real()
	}
	return &Supervisor{
		run:     run,
		backoff: backoff.NewConstantBackOff(delay),
		tracker: tracker,
		clock:   c,
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled. Cancellation is a clean exit (nil).
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		err := s.run(ctx)
		if ctx.Err() != nil {
			s.logger.Info("bridge stopped")
			return nil
		}

		delay := s.backoff.NextBackOff()
		if err != nil {
			s.logger.Error("bridge loop failed, restarting", "error", err, "backoff", delay)
		} else {
			s.logger.Warn("bridge loop exited, restarting", "backoff", delay)
		}

		if err := clock.Sleep(ctx, s.clock, delay); err != nil {
			s.logger.Info("bridge stopped")
			return nil
		}

		metrics.Restarted()
		if s.tracker != nil {
			s.tracker.Restarted()
		}
	}
}
