// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tamzrod/ledbridge/internal/clock"
)

// VisibilitySource returns the marker indices currently visible on the map.
type VisibilitySource interface {
	VisibleMarkers(ctx context.Context) ([]int, error)
}

// TriggerSource takes the pending memory trigger, if any.
// The source clears it on read: a trigger is delivered at most once.
type TriggerSource interface {
	TakeTrigger(ctx context.Context) (data []int, ok bool, err error)
}

// Poller is the boundary between the collaborator and the bridge.
// Source errors stop here: they are logged and become "no data".
type Poller struct {
	visibility VisibilitySource
	trigger    TriggerSource
	clock      clock.Clock
	logger     *slog.Logger
}

// New creates a poller over the two sources.
func New(vis VisibilitySource, trig TriggerSource, c clock.Clock, logger *slog.Logger) (*Poller, error) {
	if vis == nil {
		return nil, errors.New("poller: visibility source required")
	}
	if trig == nil {
		return nil, errors.New("poller: trigger source required")
	}
	if c == nil {
		c = clock.Real()
	}
	return &Poller{visibility: vis, trigger: trig, clock: c, logger: logger}, nil
}

// PollOnce performs exactly one poll cycle.
// Priority 1: the trigger source. Priority 2, only when no trigger is
// pending: the visibility source.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{At: p.clock.Now()}

	if data, ok := p.Trigger(ctx); ok {
		res.Trigger = data
		return res
	}

	res.Markers = p.Visible(ctx)
	return res
}

// Trigger queries the trigger source once.
// A trigger flagged present but carrying no data counts as absent.
func (p *Poller) Trigger(ctx context.Context) ([]int, bool) {
	data, ok, err := p.trigger.TakeTrigger(ctx)
	if err != nil {
		p.logger.Warn("memory trigger request failed", "error", err)
		return nil, false
	}
	if !ok || len(data) == 0 {
		return nil, false
	}
	p.logger.Info("memory trigger detected", "bytes", len(data))
	return data, true
}

// Visible queries the visibility source once. Failure yields an empty list.
func (p *Poller) Visible(ctx context.Context) []int {
	markers, err := p.visibility.VisibleMarkers(ctx)
	if err != nil {
		p.logger.Warn("visible markers request failed", "error", err)
		return []int{}
	}
	return markers
}
