// internal/frame/encode_test.go
package frame

import (
	"errors"
	"math/bits"
	"testing"
)

type mapColors map[int]RGB

func (m mapColors) ColorOf(i int) RGB {
	if c, ok := m[i]; ok {
		return c
	}
	return White
}

type panicColors struct{}

func (panicColors) ColorOf(int) RGB { panic("boom") }

func TestPositionMask_AllSubsets(t *testing.T) {
	// Walk every subset of 1..16; cheap at 65536 iterations.
	for set := 0; set < 1<<16; set++ {
		var idx []int
		for i := 1; i <= 16; i++ {
			if set&(1<<(i-1)) != 0 {
				idx = append(idx, i)
			}
		}

		mask := PositionMask(idx)
		if got, want := bits.OnesCount16(mask), len(idx); got != want {
			t.Fatalf("set=%#x: bits=%d want %d", set, got, want)
		}
		for i := 1; i <= 16; i++ {
			in := set&(1<<(i-1)) != 0
			on := mask&(1<<(16-i)) != 0
			if in != on {
				t.Fatalf("set=%#x: marker %d in=%v bit=%v", set, i, in, on)
			}
		}
	}
}

func TestPositionMask_IgnoresOutOfRange(t *testing.T) {
	base := PositionMask([]int{3, 7})
	noisy := PositionMask([]int{0, -1, 3, 17, 100, 7})
	if base != noisy {
		t.Fatalf("out-of-range indices changed mask: %016b vs %016b", base, noisy)
	}
}

func TestPositionMask_Duplicates(t *testing.T) {
	if got := PositionMask([]int{5, 5, 5}); bits.OnesCount16(got) != 1 {
		t.Fatalf("duplicates must set one bit, got %016b", got)
	}
}

func TestEncodeRegular_FirstAndLast(t *testing.T) {
	colors := mapColors{
		1:  {R: 255},
		16: {G: 255},
	}

	f, err := EncodeRegular([]int{1, 16}, colors)
	if err != nil {
		t.Fatalf("EncodeRegular err=%v", err)
	}

	if f.Mask() != 0b1000000000000001 {
		t.Fatalf("mask=%016b", f.Mask())
	}

	want := make([]byte, 48)
	want[0] = 255    // slot 1 R
	want[45+1] = 255 // slot 16 G
	for i, b := range f[2:] {
		if b != want[i] {
			t.Fatalf("color byte %d = %d want %d", i, b, want[i])
		}
	}
}

func TestEncodeRegular_UnregisteredIsWhite(t *testing.T) {
	f, err := EncodeRegular([]int{4}, mapColors{})
	if err != nil {
		t.Fatalf("EncodeRegular err=%v", err)
	}
	if got := f.SlotColor(4); got != White {
		t.Fatalf("slot 4 = %v want white", got)
	}
	if got := f.SlotColor(5); got != Off {
		t.Fatalf("slot 5 = %v want off", got)
	}
}

func TestEncodeRegular_FaultIsAllZero(t *testing.T) {
	f, err := EncodeRegular([]int{1}, panicColors{})
	if err == nil {
		t.Fatalf("expected error from panicking lookup")
	}
	if f != (Frame{}) {
		t.Fatalf("fault must yield zero frame")
	}

	f, err = EncodeRegular([]int{1}, nil)
	if err == nil || f != (Frame{}) {
		t.Fatalf("nil colors must yield zero frame with error")
	}
}

func TestEncodeRegular_NeverSentinel(t *testing.T) {
	// Every marker visible and every color 0xFF: the closest a regular
	// frame gets to the sentinel.
	all := make([]int, 16)
	for i := range all {
		all[i] = i + 1
	}

	f, err := EncodeRegular(all, mapColors{})
	if err != nil {
		t.Fatalf("EncodeRegular err=%v", err)
	}
	if f.IsMemory() {
		t.Fatalf("regular frame produced the memory sentinel")
	}
	if f.Active() != 16 {
		t.Fatalf("active=%d", f.Active())
	}
}

func TestEncodeMemory_Lengths(t *testing.T) {
	good, _ := BuildMemory(3, RGB{R: 1, G: 2, B: 3})
	raw := make([]int, Size)
	for i, b := range good {
		raw[i] = int(b)
	}

	f, err := EncodeMemory(raw)
	if err != nil {
		t.Fatalf("EncodeMemory err=%v", err)
	}
	if f != good {
		t.Fatalf("memory frame not forwarded verbatim")
	}

	for _, n := range []int{0, 49, 51} {
		if _, err := EncodeMemory(make([]int, n)); !errors.Is(err, ErrMemoryLength) {
			t.Fatalf("len=%d: expected ErrMemoryLength, got %v", n, err)
		}
	}
}

func TestEncodeMemory_ByteRange(t *testing.T) {
	raw := make([]int, Size)
	raw[10] = 256
	if _, err := EncodeMemory(raw); !errors.Is(err, ErrMemoryByte) {
		t.Fatalf("expected ErrMemoryByte, got %v", err)
	}
}

func TestBuildMemory_Layout(t *testing.T) {
	f, err := BuildMemory(12, RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatalf("BuildMemory err=%v", err)
	}
	if !f.IsMemory() || f.Header() != "fffefdfc" {
		t.Fatalf("bad header %s", f.Header())
	}
	idx, c := f.MemoryTarget()
	if idx != 12 || c != (RGB{R: 10, G: 20, B: 30}) {
		t.Fatalf("target=%d %v", idx, c)
	}
	for i := 8; i < Size; i++ {
		if f[i] != 0 {
			t.Fatalf("padding byte %d = %d", i, f[i])
		}
	}

	if _, err := BuildMemory(0, White); err == nil {
		t.Fatalf("expected error for index 0")
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF0000", RGB{R: 255}},
		{"00ff7f", RGB{G: 255, B: 127}},
		{"not-a-color", White},
		{"#FFF", White},
		{"#GG0000", White},
		{"", White},
		{"#FF00000", White},
	}

	for _, tt := range tests {
		if got := HexToRGB(tt.in); got != tt.want {
			t.Errorf("HexToRGB(%q) = %v want %v", tt.in, got, tt.want)
		}
	}

	if _, err := DecodeHex("nope"); err == nil {
		t.Errorf("DecodeHex must report malformed input")
	}
}

func TestFromComponents(t *testing.T) {
	if _, err := FromComponents([]int{1, 2}); err == nil {
		t.Fatalf("expected error for 2 components")
	}
	if _, err := FromComponents([]int{1, 2, 300}); err == nil {
		t.Fatalf("expected error for out-of-range component")
	}
	c, err := FromComponents([]int{1, 2, 3})
	if err != nil || c != (RGB{R: 1, G: 2, B: 3}) {
		t.Fatalf("got %v err=%v", c, err)
	}
}
