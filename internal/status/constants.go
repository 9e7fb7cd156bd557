// internal/status/constants.go
package status

// Bridge status vocabulary.
// These values are part of the /status contract and MUST NOT be configurable.

// ---- HEALTH CODES ----

// Health is the bridge health state.
type Health uint16

// HealthUnknown represents the boot state: no cycle has completed yet.
const HealthUnknown Health = 0

// HealthOK represents a bridge whose last cycle delivered a frame.
const HealthOK Health = 1

// HealthError represents a failed send or a failed link open.
const HealthError Health = 2

// HealthStale represents an open link with no frame delivered recently.
const HealthStale Health = 3

// HealthDisabled represents a stopped bridge (shutdown in progress).
const HealthDisabled Health = 4

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthStale:
		return "stale"
	case HealthDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ---- FRAME KINDS ----

const (
	KindRegular = "regular"
	KindMemory  = "memory"
)

// ---- LIMITS ----

// StaleAfterCycles is how many bridge intervals may pass without a
// delivered frame before an OK bridge reports stale.
const StaleAfterCycles = 10

// MaxSecondsInError saturates the error duration counter.
const MaxSecondsInError = 65535
