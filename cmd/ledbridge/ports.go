// cmd/ledbridge/ports.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ledbridge/internal/writer/serial"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports and the one \"auto\" would pick",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := serial.Ports()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "no serial ports found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PORT\tUSB\tVID:PID\tSERIAL\tPRODUCT")
		for _, p := range ports {
			id := "-"
			if p.USB {
				id = p.VID + ":" + p.PID
			}
			fmt.Fprintf(w, "%s\t%v\t%s\t%s\t%s\n", p.Name, p.USB, id, p.SerialNumber, p.Product)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if name, err := serial.Detect(); err == nil {
			fmt.Fprintf(out, "\nauto: %s\n", name)
		}
		return nil
	},
}
