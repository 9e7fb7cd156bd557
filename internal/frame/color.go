// internal/frame/color.go
package frame

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// RGB is one LED color.
type RGB struct {
	R, G, B uint8
}

// White is the fallback for unregistered or undecodable colors.
var White = RGB{R: 255, G: 255, B: 255}

// Off is an unlit slot.
var Off = RGB{}

// DecodeHex parses "#RRGGBB" (the '#' is optional).
// Exactly six hex digits are accepted.
func DecodeHex(s string) (RGB, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 {
		return White, fmt.Errorf("frame: invalid hex color %q: want 6 digits", s)
	}

	var b [3]byte
	if _, err := hex.Decode(b[:], []byte(raw)); err != nil {
		return White, fmt.Errorf("frame: invalid hex color %q: %w", s, err)
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// HexToRGB is DecodeHex with the error folded into White.
func HexToRGB(s string) RGB {
	c, err := DecodeHex(s)
	if err != nil {
		return White
	}
	return c
}

// FromComponents builds an RGB from exactly three 0..255 components.
func FromComponents(c []int) (RGB, error) {
	if len(c) != 3 {
		return RGB{}, fmt.Errorf("frame: color needs 3 components, got %d", len(c))
	}
	for i, v := range c {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("frame: color component %d out of range: %d", i, v)
		}
	}
	return RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}, nil
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}
