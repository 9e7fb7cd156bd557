// internal/status/tracker.go
package status

import (
	"sync"
	"time"

	"github.com/tamzrod/ledbridge/internal/clock"
)

// Info is the static part of the snapshot, fixed at startup.
type Info struct {
	Port          string
	VisibilityURL string
	TriggerURL    string
	Interval      time.Duration
}

// Tracker owns bridge state.
//
// The bridge cycle is the only writer; the HTTP server reads.
// Health transitions follow the delivery outcome of each cycle:
// a sent frame is OK, a failed send or open is Error.
type Tracker struct {
	mu    sync.Mutex
	info  Info
	clock clock.Clock

	snap       Snapshot
	errorSince time.Time
}

func NewTracker(info Info, c clock.Clock) *Tracker {
	if c == nil {
		c = clock.Real()
	}
	t := &Tracker{info: info, clock: c}
	t.snap = Snapshot{
		Health:        HealthUnknown,
		Port:          info.Port,
		VisibilityURL: info.VisibilityURL,
		TriggerURL:    info.TriggerURL,
		StartedAt:     c.Now(),
	}
	return t
}

// FrameSent records a delivered frame.
func (t *Tracker) FrameSent(kind, mask string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.FramesSent++
	if kind == KindMemory {
		t.snap.MemoryFrames++
	}
	t.snap.LastFrameKind = kind
	if mask != "" {
		t.snap.LastMask = mask
	}
	t.snap.LastSentAt = t.clock.Now()
	t.snap.LinkOpen = true
	t.markOK()
}

// SendFailed records a send or open failure.
func (t *Tracker) SendFailed(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.SendFailures++
	t.markError(err)
}

// LinkClosed records that the link went down (inner loop exit).
func (t *Tracker) LinkClosed(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.LinkOpen = false
	if err != nil {
		t.markError(err)
	}
}

// LinkOpened records an open link.
func (t *Tracker) LinkOpened() {
	t.mu.Lock()
	t.snap.LinkOpen = true
	t.mu.Unlock()
}

// Restarted counts a supervisor restart.
func (t *Tracker) Restarted() {
	t.mu.Lock()
	t.snap.Restarts++
	t.mu.Unlock()
}

// Cycle records one completed bridge cycle.
func (t *Tracker) Cycle(visible, colors int) {
	t.mu.Lock()
	t.snap.Cycles++
	t.snap.VisibleMarkers = visible
	t.snap.LoadedColors = colors
	t.mu.Unlock()
}

// ControllerLine records the last diagnostic line from the controller.
func (t *Tracker) ControllerLine(line string) {
	t.mu.Lock()
	t.snap.LastLine = line
	t.mu.Unlock()
}

// Stopped marks the bridge disabled.
func (t *Tracker) Stopped() {
	t.mu.Lock()
	t.snap.Health = HealthDisabled
	t.snap.LinkOpen = false
	t.mu.Unlock()
}

// Snapshot returns a copy with derived fields filled in.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.snap
	now := t.clock.Now()

	if s.Health == HealthError && !t.errorSince.IsZero() {
		secs := now.Sub(t.errorSince) / time.Second
		if secs > MaxSecondsInError {
			secs = MaxSecondsInError
		}
		s.SecondsInError = uint16(secs)
	}

	if s.Health == HealthOK && t.info.Interval > 0 &&
		now.Sub(s.LastSentAt) > StaleAfterCycles*t.info.Interval {
		s.Health = HealthStale
	}

	return s
}

// ---- transitions (caller holds mu) ----

func (t *Tracker) markError(err error) {
	if t.snap.Health != HealthError {
		t.snap.Health = HealthError
		t.errorSince = t.clock.Now()
	}
	if err != nil {
		t.snap.LastError = err.Error()
	}
}

func (t *Tracker) markOK() {
	if t.snap.Health == HealthOK {
		return
	}
	t.snap.Health = HealthOK
	t.snap.LastError = ""
	t.errorSince = time.Time{}
}
