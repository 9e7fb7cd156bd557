// cmd/ledbridge/flash.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ledbridge/internal/clock"
	"github.com/tamzrod/ledbridge/internal/frame"
	"github.com/tamzrod/ledbridge/internal/logging"
	"github.com/tamzrod/ledbridge/internal/writer"
)

var (
	flashMarker int
	flashColor  = newColorValue(frame.White)
	flashClear  bool
	flashWait   time.Duration
)

// flashCmd sends a single frame, for wiring checks without a map server.
var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Send one memory frame (or an all-off frame) to the controller",
	Example: `  ledbridge flash -c ledbridge.yaml --marker 3 --color "#00FF00"
  ledbridge flash -c ledbridge.yaml --clear`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		logging.Initialize(cfg.Logging)
		logger := logging.GetLogger("flash")

		var f frame.Frame // all-off regular frame
		if !flashClear {
			if f, err = frame.BuildMemory(flashMarker, flashColor.rgb); err != nil {
				return err
			}
		}

		clk := clock.Real()
		transport, err := writer.Build(cfg.Serial, clk, logging.GetLogger("writer"))
		if err != nil {
			return err
		}
		defer transport.Close()

		ctx := cmd.Context()
		if err := transport.Send(ctx, f); err != nil {
			return err
		}
		logger.Info("frame sent", "header", f.Header(), "memory", f.IsMemory())

		// Echo whatever the controller reports back.
		deadline := clk.Now().Add(flashWait)
		for clk.Now().Before(deadline) {
			if line, ok := transport.ReadLine(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), line)
				continue
			}
			if err := clock.Sleep(ctx, clk, 50*time.Millisecond); err != nil {
				break
			}
		}
		return nil
	},
}

func init() {
	flashCmd.Flags().IntVarP(&flashMarker, "marker", "m", 1, "Marker slot (1-16)")
	flashCmd.Flags().VarP(flashColor, "color", "C", "Marker color (#RRGGBB)")
	flashCmd.Flags().BoolVar(&flashClear, "clear", false, "Send an all-off regular frame instead")
	flashCmd.Flags().DurationVar(&flashWait, "wait", time.Second, "How long to print controller replies")
	flashCmd.MarkFlagsMutuallyExclusive("clear", "marker")
}
