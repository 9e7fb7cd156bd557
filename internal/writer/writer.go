// internal/writer/writer.go
package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tamzrod/ledbridge/internal/clock"
	"github.com/tamzrod/ledbridge/internal/frame"
)

// ErrNotOpen is returned when a send finds no usable link.
var ErrNotOpen = errors.New("writer: link not open")

// maxPending bounds buffered diagnostic input.
const maxPending = 4096

// Config is the minimal runtime config the transport needs.
type Config struct {
	Port   string
	Settle time.Duration
}

// Transport owns the link to the LED controller.
//
// It is driven by exactly one goroutine (the bridge cycle). Only the
// state flag is read from elsewhere (status), hence atomic.
//
// Every I/O failure degrades to an error value and the Closed state;
// nothing here panics because the peer went away.
type Transport struct {
	cfg    Config
	open   Opener
	clock  clock.Clock
	logger *slog.Logger

	link    Link
	state   atomic.Int32
	pending []byte
	buf     [256]byte
}

// New creates a closed transport.
func New(cfg Config, open Opener, c clock.Clock, logger *slog.Logger) (*Transport, error) {
	if open == nil {
		return nil, errors.New("writer: opener required")
	}
	if cfg.Settle < 0 {
		return nil, errors.New("writer: settle must be >= 0")
	}
	if c == nil {
		c = clock.Real()
	}
	return &Transport{cfg: cfg, open: open, clock: c, logger: logger}, nil
}

// Open makes the link usable. No-op when already open.
// After a successful open it waits the settle delay (the controller resets
// when the port opens) before declaring the link Open.
func (t *Transport) Open(ctx context.Context) error {
	if t.link != nil {
		return nil
	}

	link, err := t.open()
	if err != nil {
		return fmt.Errorf("writer: open %s: %w", t.cfg.Port, err)
	}

	if err := clock.Sleep(ctx, t.clock, t.cfg.Settle); err != nil {
		_ = link.Close()
		return fmt.Errorf("writer: open %s: settle interrupted: %w", t.cfg.Port, err)
	}

	t.link = link
	t.pending = t.pending[:0]
	t.state.Store(int32(Open))
	t.logger.Info("serial connection opened", "port", t.cfg.Port)
	return nil
}

// Close closes the link if open. Idempotent.
func (t *Transport) Close() error {
	if t.link == nil {
		return nil
	}
	err := t.drop()
	if err != nil {
		t.logger.Warn("error closing serial connection", "port", t.cfg.Port, "error", err)
		return fmt.Errorf("writer: close %s: %w", t.cfg.Port, err)
	}
	t.logger.Info("serial connection closed", "port", t.cfg.Port)
	return nil
}

// Send writes one frame verbatim. When the link is closed it makes exactly
// one open attempt first. Any write failure (short writes included)
// closes the link so the next cycle re-opens it.
func (t *Transport) Send(ctx context.Context, f frame.Frame) error {
	if t.link == nil {
		if err := t.Open(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrNotOpen, err)
		}
	}

	n, err := t.link.Write(f[:])
	if err == nil && n != len(f) {
		err = io.ErrShortWrite
	}
	if err != nil {
		_ = t.drop()
		return fmt.Errorf("writer: write %s: %w", t.cfg.Port, err)
	}
	return nil
}

// ReadLine returns one complete line from the peer if one is buffered.
// Diagnostic only: errors are logged and reported as "no line".
func (t *Transport) ReadLine() (string, bool) {
	if t.link == nil {
		return "", false
	}

	n, err := t.link.ReadAvailable(t.buf[:])
	if n > 0 {
		t.pending = append(t.pending, t.buf[:n]...)
	}
	if err != nil {
		t.logger.Warn("error reading controller response", "port", t.cfg.Port, "error", err)
	}

	// A chatty controller outpaces one line per cycle: keep the newest.
	if over := len(t.pending) - maxPending; over > 0 {
		t.pending = dropOldest(t.pending, over)
		t.logger.Debug("controller output dropped", "port", t.cfg.Port, "bytes", over)
	}

	i := bytes.IndexByte(t.pending, '\n')
	if i < 0 {
		return "", false
	}

	raw := t.pending[:i]
	line := strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
	t.pending = append(t.pending[:0], t.pending[i+1:]...)

	if line == "" {
		return "", false
	}
	return line, true
}

// State reports the link state. Safe from any goroutine.
func (t *Transport) State() State {
	return State(t.state.Load())
}

// Connected is State() == Open.
func (t *Transport) Connected() bool {
	return t.State() == Open
}

// Port is the configured port identifier.
func (t *Transport) Port() string {
	return t.cfg.Port
}

// dropOldest discards at least n leading bytes of p, up to a line boundary
// so the next line returned is whole.
func dropOldest(p []byte, n int) []byte {
	j := bytes.IndexByte(p[n:], '\n')
	if j < 0 {
		return p[:0]
	}
	return append(p[:0], p[n+j+1:]...)
}

func (t *Transport) drop() error {
	link := t.link
	t.link = nil
	t.pending = t.pending[:0]
	t.state.Store(int32(Closed))
	return link.Close()
}
