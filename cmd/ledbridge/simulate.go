// cmd/ledbridge/simulate.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/tamzrod/ledbridge/internal/collab"
	"github.com/tamzrod/ledbridge/internal/logging"
	"github.com/tamzrod/ledbridge/internal/metrics"
)

var (
	simulateListen  string
	simulateVisible []string
)

// simulateCmd stands in for the map server during bench bring-up.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Serve the map server's bridge endpoints from memory",
	Long: `simulate serves GET ` + collab.VisibilityPath + ` and GET ` + collab.TriggerPath + `
with the map server's contract. Change state with:

  POST /visible  {"marker_names": ["Depot (1)", "Gate (4)"]}
  POST /trigger  {"marker": 4, "color": "#FF8800"}`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logging.Initialize(logging.Config{Level: "info"})
		logger := logging.GetLogger("simulate")

		srv := collab.NewServer(logger)
		srv.SetVisible(simulateVisible)

		return metrics.Serve(cmd.Context(), simulateListen, srv.Handler(), logger)
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateListen, "listen", "l", ":5000", "HTTP listen address")
	simulateCmd.Flags().StringSliceVar(&simulateVisible, "visible", nil, "Initially visible marker names")
}
