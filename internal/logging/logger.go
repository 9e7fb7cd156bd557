// internal/logging/logger.go
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config represents logging configuration.
type Config struct {
	Level  string `yaml:"level" env:"LEDBRIDGE_LOG_LEVEL"`
	Format string `yaml:"format" env:"LEDBRIDGE_LOG_FORMAT"`
}

var (
	mutex         sync.RWMutex
	levelVar      = &slog.LevelVar{}
	format        = "text"
	moduleLoggers = make(map[string]*slog.Logger)
)

var output io.Writer = os.Stdout

// Initialize sets up the logging system. Safe to call more than once;
// module loggers handed out earlier pick up the new level.
func Initialize(cfg Config) {
	mutex.Lock()
	defer mutex.Unlock()

	lvl, ok := ParseLevel(cfg.Level)
	if !ok {
		lvl = slog.LevelInfo
	}
	levelVar.Set(lvl)

	if cfg.Format == "json" {
		format = "json"
	} else {
		format = "text"
	}

	// Rebuild handlers so the format change applies everywhere.
	for module := range moduleLoggers {
		moduleLoggers[module] = slog.New(createHandler()).With("module", module)
	}
	slog.SetDefault(slog.New(createHandler()))
}

// GetLogger returns a logger for the specified module, creating it if needed.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}
	logger := slog.New(createHandler()).With("module", module)
	moduleLoggers[module] = logger
	return logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createHandler builds stdout (+ journal when available) handlers.
// Caller holds mutex.
func createHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: levelVar}

	var stdoutHandler slog.Handler
	if format == "json" {
		stdoutHandler = slog.NewJSONHandler(output, opts)
	} else {
		stdoutHandler = slog.NewTextHandler(output, opts)
	}

	if !IsJournalAvailable() {
		return stdoutHandler
	}
	return NewMultiHandler(stdoutHandler, NewJournalHandler(levelVar))
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
