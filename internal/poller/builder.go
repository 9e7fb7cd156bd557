// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	"github.com/tamzrod/ledbridge/internal/clock"
	cfg "github.com/tamzrod/ledbridge/internal/config"
	"github.com/tamzrod/ledbridge/internal/poller/httpapi"
)

// Build constructs a Poller wired to the collaborator's HTTP endpoints.
// No request is made here; an unreachable collaborator is a per-cycle
// condition, not a startup failure.
func Build(c cfg.CollaboratorConfig, clk clock.Clock, logger *slog.Logger) (*Poller, error) {
	client, err := httpapi.New(httpapi.Config{
		VisibilityURL: c.VisibilityURL,
		TriggerURL:    c.TriggerURL,
		Timeout:       time.Duration(c.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	// One client serves both contracts.
	return New(client, client, clk, logger)
}
