// internal/config/config.go
package config

import "github.com/tamzrod/ledbridge/internal/logging"

type Config struct {
	Bridge       BridgeConfig       `yaml:"bridge"`
	Serial       SerialConfig       `yaml:"serial"`
	Collaborator CollaboratorConfig `yaml:"collaborator"`
	Colors       ColorsConfig       `yaml:"colors"`
	Logging      logging.Config     `yaml:"logging"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// ---- BRIDGE LOOP ----

type BridgeConfig struct {
	IntervalMs       int `yaml:"interval_ms" env:"LEDBRIDGE_INTERVAL_MS"`
	RestartBackoffMs int `yaml:"restart_backoff_ms" env:"LEDBRIDGE_RESTART_BACKOFF_MS"`
}

// ---- SERIAL LINK ----

type SerialConfig struct {
	// Port is a device path, "auto", or "tcp://host:port".
	Port          string `yaml:"port" env:"LEDBRIDGE_SERIAL_PORT"`
	BaudRate      int    `yaml:"baud_rate" env:"LEDBRIDGE_SERIAL_BAUD"`
	SettleMs      int    `yaml:"settle_ms" env:"LEDBRIDGE_SERIAL_SETTLE_MS"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms" env:"LEDBRIDGE_SERIAL_READ_TIMEOUT_MS"`
}

// ---- COLLABORATOR (map server) ----

type CollaboratorConfig struct {
	VisibilityURL string `yaml:"visibility_url" env:"LEDBRIDGE_VISIBILITY_URL"`
	TriggerURL    string `yaml:"trigger_url" env:"LEDBRIDGE_TRIGGER_URL"`
	TimeoutMs     int    `yaml:"timeout_ms" env:"LEDBRIDGE_HTTP_TIMEOUT_MS"`
}

// ---- COLOR TABLE ----

type ColorsConfig struct {
	Path string `yaml:"path" env:"LEDBRIDGE_COLORS_PATH"`

	// Overrides pins marker colors regardless of the table ("#RRGGBB").
	Overrides map[int]string `yaml:"overrides"`
}

// ---- METRICS / STATUS ----

type MetricsConfig struct {
	// Listen is the HTTP address for /metrics and /status. Empty disables.
	Listen string `yaml:"listen" env:"LEDBRIDGE_METRICS_LISTEN"`
}
