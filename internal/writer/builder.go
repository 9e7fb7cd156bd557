// internal/writer/builder.go
package writer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tamzrod/ledbridge/internal/clock"
	cfg "github.com/tamzrod/ledbridge/internal/config"
	"github.com/tamzrod/ledbridge/internal/writer/serial"
	"github.com/tamzrod/ledbridge/internal/writer/tcp"
)

// Build constructs a closed Transport for the configured port.
// No connection is attempted here; the bridge cycle opens the link.
func Build(c cfg.SerialConfig, clk clock.Clock, logger *slog.Logger) (*Transport, error) {
	readTimeout := time.Duration(c.ReadTimeoutMs) * time.Millisecond

	var open Opener
	if strings.HasPrefix(c.Port, tcp.Scheme) {
		open = func() (Link, error) {
			return tcp.Dial(tcp.Config{
				Endpoint:    c.Port,
				ReadTimeout: readTimeout,
			})
		}
	} else {
		open = func() (Link, error) {
			client, err := serial.Open(serial.Config{
				Address:     c.Port,
				BaudRate:    c.BaudRate,
				ReadTimeout: readTimeout,
			})
			if err != nil {
				return nil, err
			}
			if c.Port == serial.AutoPort {
				logger.Info("serial port detected", "port", client.Address())
			}
			return client, nil
		}
	}

	return New(Config{
		Port:   c.Port,
		Settle: time.Duration(c.SettleMs) * time.Millisecond,
	}, open, clk, logger)
}
