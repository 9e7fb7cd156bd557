// internal/collab/mailbox.go
package collab

import "sync"

// Mailbox is a single-slot, take-and-clear value.
// A value put once is taken at most once.
type Mailbox[T any] struct {
	mu   sync.Mutex
	v    T
	full bool
}

// Put stores v, replacing any untaken value. Reports whether one was replaced.
func (m *Mailbox[T]) Put(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced := m.full
	m.v = v
	m.full = true
	return replaced
}

// Take returns the pending value and clears the slot.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.full {
		return zero, false
	}
	v := m.v
	m.v = zero
	m.full = false
	return v, true
}
