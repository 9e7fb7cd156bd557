// internal/frame/encode.go
package frame

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
)

// Frame is one fixed-size transmission.
type Frame [Size]byte

// Colors resolves a marker index to its LED color.
type Colors interface {
	ColorOf(index int) RGB
}

var (
	ErrMemoryLength = errors.New("frame: memory frame must be exactly 50 bytes")
	ErrMemoryByte   = errors.New("frame: memory frame byte out of range")
	ErrSentinel     = errors.New("frame: regular frame collides with memory sentinel")
)

// PositionMask sets bit (16 - i) for every visible index i in 1..16.
// Out-of-range indices are ignored.
func PositionMask(indices []int) uint16 {
	var mask uint16
	for _, i := range indices {
		if i < MinIndex || i > MaxIndex {
			continue
		}
		mask |= 1 << (Slots - i)
	}
	return mask
}

// EncodeRegular builds a regular frame: mask, then one RGB triple per slot.
// Visible slots take colors.ColorOf(i); the rest are off.
//
// Any fault yields the all-zero frame (all LEDs off) plus the reason.
// No IO. No side effects.
func EncodeRegular(indices []int, colors Colors) (f Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = Frame{}
			err = fmt.Errorf("frame: encode regular: %v", r)
		}
	}()

	mask := PositionMask(indices)
	binary.BigEndian.PutUint16(f[MaskOffset:MaskOffset+2], mask)

	for slot := MinIndex; slot <= MaxIndex; slot++ {
		c := Off
		if mask&(1<<(Slots-slot)) != 0 {
			c = colors.ColorOf(slot)
		}
		off := ColorsOffset + (slot-1)*BytesPerColor
		f[off] = c.R
		f[off+1] = c.G
		f[off+2] = c.B
	}

	// HARD INVARIANT: the sentinel is reserved for memory frames.
	if f.IsMemory() {
		return Frame{}, ErrSentinel
	}
	return f, nil
}

// EncodeMemory validates a memory frame received from the collaborator.
// The bytes are forwarded verbatim; only length and byte range are checked.
func EncodeMemory(raw []int) (Frame, error) {
	var f Frame
	if len(raw) != Size {
		return f, fmt.Errorf("%w: got %d", ErrMemoryLength, len(raw))
	}
	for i, v := range raw {
		if v < 0 || v > 255 {
			return Frame{}, fmt.Errorf("%w: index %d value %d", ErrMemoryByte, i, v)
		}
		f[i] = byte(v)
	}
	return f, nil
}

// BuildMemory constructs a memory frame in the known layout:
// sentinel, marker index, RGB, zero padding.
func BuildMemory(index int, c RGB) (Frame, error) {
	if index < MinIndex || index > MaxIndex {
		return Frame{}, fmt.Errorf("frame: marker index %d out of range", index)
	}
	var f Frame
	copy(f[:len(Sentinel)], Sentinel[:])
	f[MemoryIndexOffset] = byte(index)
	f[MemoryColorOffset] = c.R
	f[MemoryColorOffset+1] = c.G
	f[MemoryColorOffset+2] = c.B
	return f, nil
}

// IsMemory reports whether f starts with the memory sentinel.
func (f Frame) IsMemory() bool {
	return f[0] == Sentinel[0] && f[1] == Sentinel[1] &&
		f[2] == Sentinel[2] && f[3] == Sentinel[3]
}

// Mask returns the position mask of a regular frame.
func (f Frame) Mask() uint16 {
	return binary.BigEndian.Uint16(f[MaskOffset : MaskOffset+2])
}

// Active returns the number of lit slots in a regular frame.
func (f Frame) Active() int {
	return bits.OnesCount16(f.Mask())
}

// SlotColor returns the RGB triple for slot 1..16 of a regular frame.
func (f Frame) SlotColor(slot int) RGB {
	if slot < MinIndex || slot > MaxIndex {
		return Off
	}
	off := ColorsOffset + (slot-1)*BytesPerColor
	return RGB{R: f[off], G: f[off+1], B: f[off+2]}
}

// MemoryTarget returns the marker index and color carried by a memory frame.
func (f Frame) MemoryTarget() (int, RGB) {
	return int(f[MemoryIndexOffset]), RGB{
		R: f[MemoryColorOffset],
		G: f[MemoryColorOffset+1],
		B: f[MemoryColorOffset+2],
	}
}

// Header returns the first four bytes as hex, for logs.
func (f Frame) Header() string {
	return hex.EncodeToString(f[:4])
}
