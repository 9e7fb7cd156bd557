// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tamzrod/ledbridge/internal/frame"
	"github.com/tamzrod/ledbridge/internal/logging"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// Zero values are allowed where Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.Serial.Port) == "" {
		return fmt.Errorf("serial.port is required (device path, \"auto\" or tcp://host:port)")
	}
	if strings.HasPrefix(cfg.Serial.Port, "tcp://") {
		u, err := url.Parse(cfg.Serial.Port)
		if err != nil || u.Host == "" || u.Port() == "" {
			return fmt.Errorf("serial.port %q: want tcp://host:port", cfg.Serial.Port)
		}
	}
	if cfg.Serial.BaudRate < 0 {
		return fmt.Errorf("serial.baud_rate must be > 0, got %d", cfg.Serial.BaudRate)
	}
	if cfg.Serial.SettleMs < 0 {
		return fmt.Errorf("serial.settle_ms must be >= 0, got %d", cfg.Serial.SettleMs)
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("serial.read_timeout_ms must be >= 0, got %d", cfg.Serial.ReadTimeoutMs)
	}

	// ------------------------------------------------------------
	// COLLABORATOR
	// ------------------------------------------------------------

	if err := validateURL("collaborator.visibility_url", cfg.Collaborator.VisibilityURL); err != nil {
		return err
	}
	if err := validateURL("collaborator.trigger_url", cfg.Collaborator.TriggerURL); err != nil {
		return err
	}
	if cfg.Collaborator.TimeoutMs < 0 {
		return fmt.Errorf("collaborator.timeout_ms must be >= 0, got %d", cfg.Collaborator.TimeoutMs)
	}

	// ------------------------------------------------------------
	// BRIDGE LOOP
	// ------------------------------------------------------------

	if cfg.Bridge.IntervalMs < 0 {
		return fmt.Errorf("bridge.interval_ms must be > 0, got %d", cfg.Bridge.IntervalMs)
	}
	if cfg.Bridge.RestartBackoffMs < 0 {
		return fmt.Errorf("bridge.restart_backoff_ms must be > 0, got %d", cfg.Bridge.RestartBackoffMs)
	}

	// ------------------------------------------------------------
	// COLORS
	// ------------------------------------------------------------

	for index, hex := range cfg.Colors.Overrides {
		if index < frame.MinIndex || index > frame.MaxIndex {
			return fmt.Errorf("colors.overrides: marker %d outside %d..%d", index, frame.MinIndex, frame.MaxIndex)
		}
		if _, err := frame.DecodeHex(hex); err != nil {
			return fmt.Errorf("colors.overrides[%d]: %w", index, err)
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if _, ok := logging.ParseLevel(cfg.Logging.Level); !ok {
		return fmt.Errorf("logging.level %q: want debug, info, warn or error", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q: want text or json", cfg.Logging.Format)
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q: scheme must be http or https", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q: host required", field, raw)
	}
	return nil
}
