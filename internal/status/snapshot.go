// internal/status/snapshot.go
package status

import "time"

// Snapshot is a point-in-time copy of bridge state.
// It contains no logic; Tracker produces it.
type Snapshot struct {
	Health         Health `json:"-"`
	HealthName     string `json:"health"`
	HealthCode     uint16 `json:"health_code"`
	LastError      string `json:"last_error,omitempty"`
	SecondsInError uint16 `json:"seconds_in_error"`

	Port     string `json:"port"`
	LinkOpen bool   `json:"link_open"`

	VisibilityURL string `json:"visibility_url"`
	TriggerURL    string `json:"trigger_url"`

	LoadedColors   int `json:"loaded_colors"`
	VisibleMarkers int `json:"visible_markers"`

	Cycles        uint64    `json:"cycles"`
	FramesSent    uint64    `json:"frames_sent"`
	MemoryFrames  uint64    `json:"memory_frames"`
	SendFailures  uint64    `json:"send_failures"`
	Restarts      uint64    `json:"restarts"`
	LastFrameKind string    `json:"last_frame_kind,omitempty"`
	LastMask      string    `json:"last_mask,omitempty"`
	LastSentAt    time.Time `json:"last_sent_at,omitzero"`
	LastLine      string    `json:"last_controller_line,omitempty"`

	StartedAt time.Time `json:"started_at"`
}
