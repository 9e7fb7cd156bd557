// internal/bridge/bridge.go
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tamzrod/ledbridge/internal/clock"
	"github.com/tamzrod/ledbridge/internal/frame"
	"github.com/tamzrod/ledbridge/internal/metrics"
	"github.com/tamzrod/ledbridge/internal/poller"
	"github.com/tamzrod/ledbridge/internal/status"
)

// Poller yields one poll result per call. Source failures are already
// folded into "no data".
type Poller interface {
	PollOnce(ctx context.Context) poller.PollResult
}

// Transport is the controller link.
type Transport interface {
	Open(ctx context.Context) error
	Close() error
	Send(ctx context.Context, f frame.Frame) error
	ReadLine() (string, bool)
	Connected() bool
}

// Registry supplies marker colors and refreshes them from disk.
type Registry interface {
	frame.Colors
	Reload(path string) error
	Len() int
}

// Config is the minimal runtime config the loop needs.
type Config struct {
	Interval   time.Duration
	ColorsPath string
}

// Bridge runs the poll -> encode -> send cycle.
//
// One goroutine drives it. There is no internal parallelism: one cycle,
// one send. The transport and registry are touched only from here.
type Bridge struct {
	cfg       Config
	poller    Poller
	transport Transport
	registry  Registry
	tracker   *status.Tracker
	notifier  Notifier
	clock     clock.Clock
	logger    *slog.Logger
}

// New wires a bridge. tracker and notifier may be nil.
func New(
	cfg Config,
	p Poller,
	t Transport,
	r Registry,
	tracker *status.Tracker,
	n Notifier,
	c clock.Clock,
	logger *slog.Logger,
) (*Bridge, error) {
	if p == nil || t == nil || r == nil {
		return nil, errors.New("bridge: poller, transport and registry required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("bridge: interval must be > 0, got %s", cfg.Interval)
	}
	if tracker == nil {
		tracker = status.NewTracker(status.Info{Interval: cfg.Interval}, c)
	}
	if n == nil {
		n = nopNotifier{}
	}
	if c == nil {
		c = clock.Real()
	}
	return &Bridge{
		cfg:       cfg,
		poller:    p,
		transport: t,
		registry:  r,
		tracker:   tracker,
		notifier:  n,
		clock:     c,
		logger:    logger,
	}, nil
}

// Run is the inner loop. It returns when the link cannot be opened,
// on an internal fault, or when ctx is cancelled. A failed send is not
// fatal: the transport has dropped the link and the next cycle reopens it.
// The transport is closed on every exit path.
func (b *Bridge) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bridge: internal fault: %v", r)
		}
		if cerr := b.transport.Close(); cerr != nil {
			b.logger.Warn("transport close failed", "error", cerr)
		}
		metrics.SetLinkOpen(false)
		b.tracker.LinkClosed(cycleError(ctx, err))
	}()

	for {
		if err := b.RunOnce(ctx); err != nil {
			return err
		}
		if err := clock.Sleep(ctx, b.clock, b.cfg.Interval); err != nil {
			return err
		}
	}
}

// RunOnce performs exactly one cycle, without the trailing wait.
func (b *Bridge) RunOnce(ctx context.Context) error {
	// 1. Link.
	if err := b.transport.Open(ctx); err != nil {
		b.tracker.SendFailed(err)
		return err
	}
	metrics.SetLinkOpen(true)
	b.tracker.LinkOpened()

	// 2/3. Arbitration: a pending trigger pre-empts the regular frame.
	res := b.poller.PollOnce(ctx)

	// An interrupted poll reads as "nothing visible". MUST NOT blank the
	// strip on the way out.
	if err := ctx.Err(); err != nil {
		return err
	}

	visible := 0
	if res.HasTrigger() {
		b.sendMemory(ctx, res.Trigger)
	} else {
		visible = len(res.Markers)
		b.sendRegular(ctx, res.Markers)
	}

	// 4. Diagnostics.
	if line, ok := b.transport.ReadLine(); ok {
		b.logger.Info("controller: " + line)
		metrics.ControllerLine()
		b.tracker.ControllerLine(line)
	}

	// 5. Colors. Failure is already logged and leaves a safe registry.
	_ = b.registry.Reload(b.cfg.ColorsPath)

	colors := b.registry.Len()
	metrics.SetVisibleMarkers(visible)
	metrics.SetRegistryColors(colors)
	b.tracker.Cycle(visible, colors)
	b.notifier.Watchdog()
	return nil
}

// Tracker exposes the status tracker for the HTTP surface.
func (b *Bridge) Tracker() *status.Tracker {
	return b.tracker
}

// ---- frame paths ----
// Send failures are logged and counted here; they never end the cycle.

func (b *Bridge) sendMemory(ctx context.Context, raw []int) {
	f, err := frame.EncodeMemory(raw)
	if err != nil {
		// Data-shape error: nothing is sent this cycle.
		b.logger.Error("invalid memory trigger", "error", err)
		metrics.Trigger(metrics.TriggerInvalid)
		return
	}

	if err := b.transport.Send(ctx, f); err != nil {
		b.logger.Error("memory frame send failed", "error", err)
		metrics.Trigger(metrics.TriggerFailed)
		b.sendFailed(err)
		return
	}

	index, c := f.MemoryTarget()
	b.logger.Info("memory frame sent",
		"header", f.Header(),
		"marker", index,
		"color", c.String(),
	)
	metrics.Trigger(metrics.TriggerSent)
	metrics.FrameSent(status.KindMemory)
	b.tracker.FrameSent(status.KindMemory, "")
}

func (b *Bridge) sendRegular(ctx context.Context, markers []int) {
	f, err := frame.EncodeRegular(markers, b.registry)
	if err != nil {
		// f is the all-off frame; it is still sent.
		b.logger.Error("regular frame encode failed, sending all-off", "error", err)
	}

	if err := b.transport.Send(ctx, f); err != nil {
		b.logger.Error("regular frame send failed", "error", err)
		b.sendFailed(err)
		return
	}

	mask := fmt.Sprintf("%016b", f.Mask())
	b.logger.Debug("regular frame sent", "active", f.Active(), "mask", mask)
	metrics.FrameSent(status.KindRegular)
	b.tracker.FrameSent(status.KindRegular, mask)
}

func (b *Bridge) sendFailed(err error) {
	metrics.SendFailed()
	metrics.SetLinkOpen(b.transport.Connected())
	b.tracker.SendFailed(err)
}

// cycleError drops the error of a clean shutdown.
func cycleError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}
