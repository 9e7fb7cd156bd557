// internal/logging/multi_handler.go
package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// MultiHandler fans out log records to multiple handlers.
//
// A handler whose Handle fails (journald socket gone after a restart of
// systemd-journald) is muted from then on; the others keep logging.
// Handlers derived through WithAttrs/WithGroup share the muted state.
type MultiHandler struct {
	handlers []slog.Handler
	muted    []*atomic.Bool
}

// NewMultiHandler creates a handler that writes to all provided handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	muted := make([]*atomic.Bool, len(handlers))
	for i := range muted {
		muted[i] = &atomic.Bool{}
	}
	return &MultiHandler{handlers: handlers, muted: muted}
}

// Enabled implements slog.Handler.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for i, h := range m.handlers {
		if !m.muted[i].Load() && h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler. The first failure of each handler is
// returned; later records skip it.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for i, h := range m.handlers {
		if m.muted[i].Load() || !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			m.muted[i].Store(true)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = fn(h)
	}
	return &MultiHandler{handlers: handlers, muted: m.muted}
}
