// cmd/ledbridge/run.go
package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/ledbridge/internal/bridge"
	"github.com/tamzrod/ledbridge/internal/clock"
	"github.com/tamzrod/ledbridge/internal/colors"
	"github.com/tamzrod/ledbridge/internal/logging"
	"github.com/tamzrod/ledbridge/internal/metrics"
	"github.com/tamzrod/ledbridge/internal/poller"
	"github.com/tamzrod/ledbridge/internal/status"
	"github.com/tamzrod/ledbridge/internal/writer"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bridge until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBridge(cmd.Context(), configPath)
	},
}

func runBridge(ctx context.Context, path string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	logging.Initialize(cfg.Logging)
	logger := logging.GetLogger("bridge")
	clk := clock.Real()

	// --------------------
	// Build pipeline
	// --------------------

	registry := colors.New(cfg.Colors.PinnedColors(), logging.GetLogger("colors"))
	_ = registry.Load(cfg.Colors.Path)

	p, err := poller.Build(cfg.Collaborator, clk, logging.GetLogger("poller"))
	if err != nil {
		return err
	}

	transport, err := writer.Build(cfg.Serial, clk, logging.GetLogger("writer"))
	if err != nil {
		return err
	}

	interval := time.Duration(cfg.Bridge.IntervalMs) * time.Millisecond
	tracker := status.NewTracker(status.Info{
		Port:          cfg.Serial.Port,
		VisibilityURL: cfg.Collaborator.VisibilityURL,
		TriggerURL:    cfg.Collaborator.TriggerURL,
		Interval:      interval,
	}, clk)
	notifier := bridge.Systemd{Logger: logger}

	b, err := bridge.New(
		bridge.Config{Interval: interval, ColorsPath: cfg.Colors.Path},
		p, transport, registry, tracker, notifier, clk, logger,
	)
	if err != nil {
		return err
	}

	sup := bridge.NewSupervisor(
		b.Run,
		time.Duration(cfg.Bridge.RestartBackoffMs)*time.Millisecond,
		tracker, clk, logger,
	)

	// --------------------
	// Run until interrupted
	// --------------------

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sup.Run(gctx)
	})
	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.Metrics.Listen, metrics.Handler(tracker), logging.GetLogger("http"))
		})
	}

	logger.Info("bridge started",
		"port", cfg.Serial.Port,
		"baud", cfg.Serial.BaudRate,
		"interval", interval,
		"colors", cfg.Colors.Path,
	)
	notifier.Ready()

	err = g.Wait()

	notifier.Stopping()
	tracker.Stopped()
	if err != nil {
		logger.Error("bridge terminated", "error", err)
		return err
	}
	logger.Info("bridge shut down")
	return nil
}
