// cmd/ledbridge/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ledbridge/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ledbridge",
	Short: "Mirror map marker visibility onto an LED strip",
	Long: `ledbridge polls the map server for visible markers and one-shot memory
triggers and drives a 16-slot LED strip over a serial link with fixed
50-byte frames.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ledbridge.yaml", "Path to configuration file")

	rootCmd.AddCommand(runCmd, portsCmd, flashCmd, simulateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig runs the full config pipeline: load, validate, normalize.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}
