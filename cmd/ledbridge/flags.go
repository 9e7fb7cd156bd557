// cmd/ledbridge/flags.go
package main

import (
	"github.com/spf13/pflag"

	"github.com/tamzrod/ledbridge/internal/frame"
)

// colorValue is a "#RRGGBB" flag.
type colorValue struct {
	rgb frame.RGB
	raw string
}

var _ pflag.Value = (*colorValue)(nil)

func newColorValue(def frame.RGB) *colorValue {
	return &colorValue{rgb: def, raw: hexString(def)}
}

func (c *colorValue) String() string { return c.raw }

func (c *colorValue) Set(s string) error {
	rgb, err := frame.DecodeHex(s)
	if err != nil {
		return err
	}
	c.rgb, c.raw = rgb, s
	return nil
}

func (c *colorValue) Type() string { return "color" }

func hexString(c frame.RGB) string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0F]
	}
	return string(b)
}
