// internal/poller/types.go
package poller

import "time"

// PollResult is what one poll cycle found.
// Exactly one of Trigger / Markers is meaningful:
// a trigger pre-empts the visibility query for that cycle.
type PollResult struct {
	At time.Time

	// Trigger is the raw memory frame, nil when none was pending.
	Trigger []int

	// Markers are the visible marker indices (unvalidated range).
	Markers []int
}

// HasTrigger reports whether this cycle carries a memory trigger.
func (r PollResult) HasTrigger() bool {
	return r.Trigger != nil
}
