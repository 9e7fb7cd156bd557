// internal/writer/types.go
package writer

// Link is one open connection to the LED controller.
type Link interface {
	// Write sends bytes verbatim.
	Write(p []byte) (int, error)

	// ReadAvailable returns what the peer has sent, waiting no longer than
	// the link's short read timeout. (0, nil) means nothing arrived.
	ReadAvailable(p []byte) (int, error)

	Close() error
}

// Opener opens a link: ONE attempt per call, no retries.
type Opener func() (Link, error)

// State is the link lifecycle. There is no "connecting" state:
// an open attempt fully succeeds or leaves the transport Closed.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}
