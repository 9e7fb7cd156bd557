// internal/colors/registry.go
package colors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tidwall/jsonc"

	"github.com/tamzrod/ledbridge/internal/frame"
)

// ErrNoTable is returned when the color table file does not exist.
var ErrNoTable = errors.New("colors: color table not found")

// table is the subset of the collaborator's storage file the bridge reads.
type table struct {
	Markers map[string]struct {
		PopupText string  `json:"popup_text"`
		Color     *string `json:"color"`
	} `json:"markers"`
}

// Registry maps marker index -> LED color.
//
// The map is replaced wholesale on every load; readers never observe a
// partially built map. Pinned colors (from configuration) are re-applied
// after each load so they survive replacement.
type Registry struct {
	entries atomic.Pointer[map[int]frame.RGB]
	pinned  map[int]frame.RGB
	lastErr atomic.Pointer[error]
	logger  *slog.Logger

	// invalid holds the undecodable colors of the last load (marker -> raw).
	loadMu  sync.Mutex
	invalid map[int]string
}

// New creates an empty registry. pinned may be nil.
func New(pinned map[int]frame.RGB, logger *slog.Logger) *Registry {
	r := &Registry{
		pinned: maps.Clone(pinned),
		logger: logger,
	}
	r.store(map[int]frame.RGB{})
	return r
}

// Load replaces the registry from the color table at path.
// On any failure the registry is reset to pinned-only and the error is
// recorded and returned. The error is informational: callers keep running.
func (r *Registry) Load(path string) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	next, invalid, err := parseTable(path)
	if err != nil {
		r.store(map[int]frame.RGB{})
		prev := r.lastErr.Swap(&err)

		// Reload runs every cycle; repeat the same failure at debug only.
		if prev != nil && (*prev).Error() == err.Error() {
			r.logger.Debug("color table load failed", "path", path, "error", err)
		} else {
			r.logger.Error("color table load failed", "path", path, "error", err)
		}
		return err
	}

	r.reportInvalid(invalid)
	r.store(next)
	if prev := r.lastErr.Swap(nil); prev != nil {
		r.logger.Info("color table recovered", "path", path)
	}
	r.logger.Debug("color table loaded", "path", path, "colors", len(next))
	return nil
}

// Reload is Load; it exists so the call site reads as periodic refresh.
func (r *Registry) Reload(path string) error {
	return r.Load(path)
}

// ColorOf returns the registered color for index, or white.
func (r *Registry) ColorOf(index int) frame.RGB {
	m := r.entries.Load()
	if m == nil {
		return frame.White
	}
	if c, ok := (*m)[index]; ok {
		return c
	}
	return frame.White
}

// SetOverride inserts or replaces one entry until the next reload.
// Colors that are not exactly three 0..255 components are rejected.
func (r *Registry) SetOverride(index int, components []int) {
	c, err := frame.FromComponents(components)
	if err != nil {
		r.logger.Error("invalid color override", "marker", index, "color", components, "error", err)
		return
	}

	cur := r.entries.Load()
	next := make(map[int]frame.RGB, len(*cur)+1)
	maps.Copy(next, *cur)
	next[index] = c
	r.entries.Store(&next)

	r.logger.Info("color override set", "marker", index, "color", c.String())
}

// Len returns the number of registered colors.
func (r *Registry) Len() int {
	return len(*r.entries.Load())
}

// LastError returns the error from the most recent load, if any.
func (r *Registry) LastError() error {
	p := r.lastErr.Load()
	if p == nil {
		return nil
	}
	return *p
}

// store publishes m with pinned colors applied on top.
func (r *Registry) store(m map[int]frame.RGB) {
	maps.Copy(m, r.pinned)
	r.entries.Store(&m)
}

// reportInvalid warns once per bad color; an unchanged bad color is
// repeated at debug only. Caller holds loadMu.
func (r *Registry) reportInvalid(invalid map[int]string) {
	for index, hex := range invalid {
		if prev, seen := r.invalid[index]; seen && prev == hex {
			r.logger.Debug("invalid marker color, using white", "marker", index, "color", hex)
			continue
		}
		r.logger.Warn("invalid marker color, using white", "marker", index, "color", hex)
	}
	r.invalid = invalid
}

// parseTable reads the color table. Comments and trailing commas are
// tolerated. Entries whose label carries no "(<digits>)" are skipped.
// Undecodable colors become white and are returned in invalid.
func parseTable(path string) (out map[int]frame.RGB, invalid map[int]string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoTable, path)
		}
		return nil, nil, fmt.Errorf("colors: read %s: %w", path, err)
	}

	var t table
	if err := json.Unmarshal(jsonc.ToJSON(raw), &t); err != nil {
		return nil, nil, fmt.Errorf("colors: parse %s: %w", path, err)
	}

	out = make(map[int]frame.RGB, len(t.Markers))
	invalid = make(map[int]string)

	// Stable order so duplicate numbers resolve the same way every load.
	for _, id := range slices.Sorted(maps.Keys(t.Markers)) {
		m := t.Markers[id]

		index, ok := frame.LabelIndex(m.PopupText)
		if !ok {
			continue
		}

		hex := "#FFFFFF"
		if m.Color != nil {
			hex = *m.Color
		}
		c, err := frame.DecodeHex(hex)
		if err != nil {
			invalid[index] = hex
		} else {
			delete(invalid, index)
		}
		out[index] = c
	}

	return out, invalid, nil
}
