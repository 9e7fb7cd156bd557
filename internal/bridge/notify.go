// internal/bridge/notify.go
package bridge

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier reports service state to a supervisor such as systemd.
type Notifier interface {
	Ready()
	Watchdog()
	Stopping()
}

type nopNotifier struct{}

func (nopNotifier) Ready()    {}
func (nopNotifier) Watchdog() {}
func (nopNotifier) Stopping() {}

// Systemd notifies through sd_notify(3). Outside systemd every call is a
// no-op: daemon.SdNotify returns (false, nil) when NOTIFY_SOCKET is unset.
type Systemd struct {
	Logger *slog.Logger
}

func (s Systemd) Ready()    { s.notify(daemon.SdNotifyReady) }
func (s Systemd) Watchdog() { s.notify(daemon.SdNotifyWatchdog) }
func (s Systemd) Stopping() { s.notify(daemon.SdNotifyStopping) }

func (s Systemd) notify(state string) {
	if _, err := daemon.SdNotify(false, state); err != nil && s.Logger != nil {
		s.Logger.Debug("sd_notify failed", "state", state, "error", err)
	}
}
