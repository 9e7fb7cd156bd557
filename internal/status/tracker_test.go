// internal/status/tracker_test.go
package status

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time                       { return c.now }
func (c *manualClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }
func (c *manualClock) advance(d time.Duration)              { c.now = c.now.Add(d) }

func newTracker() (*Tracker, *manualClock) {
	c := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewTracker(Info{Port: "/dev/ttyACM0", Interval: 300 * time.Millisecond}, c), c
}

func TestTracker_BootIsUnknown(t *testing.T) {
	tr, _ := newTracker()
	s := tr.Snapshot()
	if s.Health != HealthUnknown || s.LinkOpen {
		t.Fatalf("boot snapshot: health=%v link=%v", s.Health, s.LinkOpen)
	}
	if s.Port != "/dev/ttyACM0" {
		t.Fatalf("port=%q", s.Port)
	}
}

func TestTracker_ErrorThenRecovery(t *testing.T) {
	tr, c := newTracker()

	tr.SendFailed(errors.New("device unplugged"))
	c.advance(3 * time.Second)
	tr.SendFailed(errors.New("still unplugged"))

	s := tr.Snapshot()
	if s.Health != HealthError {
		t.Fatalf("health=%v want error", s.Health)
	}
	if s.SecondsInError != 3 {
		t.Fatalf("seconds_in_error=%d want 3", s.SecondsInError)
	}
	if s.LastError != "still unplugged" || s.SendFailures != 2 {
		t.Fatalf("last_error=%q failures=%d", s.LastError, s.SendFailures)
	}

	tr.FrameSent(KindRegular, "0x8001")
	s = tr.Snapshot()
	if s.Health != HealthOK || s.LastError != "" || s.SecondsInError != 0 {
		t.Fatalf("after recovery: %+v", s)
	}
	if !s.LinkOpen || s.LastMask != "0x8001" {
		t.Fatalf("link=%v mask=%q", s.LinkOpen, s.LastMask)
	}
}

func TestTracker_SecondsInErrorSaturates(t *testing.T) {
	tr, c := newTracker()
	tr.SendFailed(errors.New("x"))
	c.advance(100000 * time.Second)
	if got := tr.Snapshot().SecondsInError; got != MaxSecondsInError {
		t.Fatalf("seconds_in_error=%d", got)
	}
}

func TestTracker_StaleAfterSilence(t *testing.T) {
	tr, c := newTracker()
	tr.FrameSent(KindRegular, "0x0000")

	c.advance(StaleAfterCycles * 300 * time.Millisecond)
	if h := tr.Snapshot().Health; h != HealthOK {
		t.Fatalf("health=%v want ok at the boundary", h)
	}
	c.advance(time.Millisecond)
	if h := tr.Snapshot().Health; h != HealthStale {
		t.Fatalf("health=%v want stale", h)
	}
}

func TestTracker_MemoryFramesCounted(t *testing.T) {
	tr, _ := newTracker()
	tr.FrameSent(KindRegular, "0x0001")
	tr.FrameSent(KindMemory, "")

	s := tr.Snapshot()
	if s.FramesSent != 2 || s.MemoryFrames != 1 {
		t.Fatalf("sent=%d memory=%d", s.FramesSent, s.MemoryFrames)
	}
	if s.LastFrameKind != KindMemory || s.LastMask != "0x0001" {
		t.Fatalf("kind=%q mask=%q", s.LastFrameKind, s.LastMask)
	}
}

func TestHandler_ServesJSON(t *testing.T) {
	tr, _ := newTracker()
	tr.Cycle(3, 12)
	tr.Restarted()

	rec := httptest.NewRecorder()
	Handler(tr).ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["health"] != "unknown" || got["health_code"] != float64(0) {
		t.Fatalf("health fields: %v %v", got["health"], got["health_code"])
	}
	if got["visible_markers"] != float64(3) || got["loaded_colors"] != float64(12) {
		t.Fatalf("counters: %v", got)
	}
	if got["restarts"] != float64(1) {
		t.Fatalf("restarts=%v", got["restarts"])
	}
}
