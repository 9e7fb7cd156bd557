// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/tamzrod/ledbridge/internal/frame"
)

// Defaults. The settle delay and interval come from the microcontroller's
// boot time and the collaborator's request budget respectively.
const (
	DefaultIntervalMs       = 300
	DefaultRestartBackoffMs = 2000
	DefaultBaudRate         = 9600
	DefaultSettleMs         = 2000
	DefaultReadTimeoutMs    = 20
	DefaultHTTPTimeoutMs    = 5000
	DefaultColorsPath       = "server_storage.json"

	// MaxHTTPTimeoutMs bounds a hung collaborator's hold on one cycle.
	MaxHTTPTimeoutMs = 5000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Bridge.IntervalMs == 0 {
		cfg.Bridge.IntervalMs = DefaultIntervalMs
	}
	if cfg.Bridge.RestartBackoffMs == 0 {
		cfg.Bridge.RestartBackoffMs = DefaultRestartBackoffMs
	}

	cfg.Serial.Port = strings.TrimSpace(cfg.Serial.Port)
	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = DefaultBaudRate
	}
	// Network links keep the peer powered across reconnects: no settle by default.
	if cfg.Serial.SettleMs == 0 && !strings.HasPrefix(cfg.Serial.Port, "tcp://") {
		cfg.Serial.SettleMs = DefaultSettleMs
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = DefaultReadTimeoutMs
	}

	if cfg.Collaborator.TimeoutMs == 0 || cfg.Collaborator.TimeoutMs > MaxHTTPTimeoutMs {
		cfg.Collaborator.TimeoutMs = DefaultHTTPTimeoutMs
	}

	if cfg.Colors.Path == "" {
		cfg.Colors.Path = DefaultColorsPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// PinnedColors converts validated overrides to RGB values.
func (c ColorsConfig) PinnedColors() map[int]frame.RGB {
	out := make(map[int]frame.RGB, len(c.Overrides))
	for index, hex := range c.Overrides {
		out[index] = frame.HexToRGB(hex)
	}
	return out
}
