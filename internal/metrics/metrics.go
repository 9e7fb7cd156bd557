// internal/metrics/metrics.go

// Package metrics provides Prometheus metrics for the bridge cycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledbridge"

var (
	framesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_sent_total",
		Help:      "Frames written to the LED controller",
	}, []string{"kind"})

	sendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "send_failures_total",
		Help:      "Frames that could not be written (link closed or write error)",
	})

	triggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memory_triggers_total",
		Help:      "Memory triggers received from the map server",
	}, []string{"result"})

	restarts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restarts_total",
		Help:      "Bridge loop restarts after a failure",
	})

	linkOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "link",
		Name:      "open",
		Help:      "1 when the controller link is open",
	})

	visibleMarkers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "visible_markers",
		Help:      "Markers visible in the last poll",
	})

	registryColors = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registry_colors",
		Help:      "Marker colors currently loaded",
	})

	controllerLines = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "controller_lines_total",
		Help:      "Diagnostic lines received from the controller",
	})
)

// Trigger results.
const (
	TriggerSent    = "sent"
	TriggerInvalid = "invalid"
	TriggerFailed  = "failed"
)

// FrameSent counts one delivered frame of the given kind.
func FrameSent(kind string) {
	framesSent.WithLabelValues(kind).Inc()
}

func SendFailed() {
	sendFailures.Inc()
}

// Trigger counts one memory trigger by result.
func Trigger(result string) {
	triggers.WithLabelValues(result).Inc()
}

func Restarted() {
	restarts.Inc()
}

// SetLinkOpen mirrors the transport state.
func SetLinkOpen(open bool) {
	if open {
		linkOpen.Set(1)
		return
	}
	linkOpen.Set(0)
}

func SetVisibleMarkers(n int) {
	visibleMarkers.Set(float64(n))
}

func SetRegistryColors(n int) {
	registryColors.Set(float64(n))
}

func ControllerLine() {
	controllerLines.Inc()
}
