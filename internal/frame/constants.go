// internal/frame/constants.go
package frame

// LED strip wire protocol constants.
// These values define the protocol and MUST NOT be configurable.

// ---- FRAME GEOMETRY ----

// Size is the fixed length of every transmission.
const Size = 50

// Slots is the number of addressable LED positions.
const Slots = 16

// MinIndex and MaxIndex bound a representable marker index.
const (
	MinIndex = 1
	MaxIndex = Slots
)

// ---- REGULAR FRAME ----

// MaskOffset is where the big-endian 16-bit position mask lives.
const MaskOffset = 0

// ColorsOffset is the first byte of the 16 RGB triples.
const ColorsOffset = 2

// BytesPerColor is the width of one RGB triple.
const BytesPerColor = 3

// ---- MEMORY FRAME ----

// Sentinel marks a memory frame. A regular frame MUST NEVER start with it.
var Sentinel = [4]byte{0xFF, 0xFE, 0xFD, 0xFC}

// Memory frame field offsets. The bridge forwards memory frames verbatim;
// these are used for logging and for building frames locally.
const (
	MemoryIndexOffset = 4
	MemoryColorOffset = 5
)
