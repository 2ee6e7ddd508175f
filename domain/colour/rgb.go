// Package colour provides the RGB value type shared by colour resolvers and
// command dialects.
package colour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColour indicates a colour string could not be parsed.
var ErrInvalidColour = errors.New("invalid colour")

// RGB is an opaque 8-bit colour. Comparable, so usable as a map key.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hidden is the neutral colour applied to residues under hidden columns.
var Hidden = RGB{R: 128, G: 128, B: 128}

// Named colours used by the built-in schemes.
var (
	White  = RGB{R: 255, G: 255, B: 255}
	Black  = RGB{}
	Red    = RGB{R: 255}
	Blue   = RGB{B: 255}
	Yellow = RGB{R: 255, G: 255}
)

// New creates an RGB from its components.
func New(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// Hex returns the lower-case #rrggbb encoding.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Decimal returns the bracketed decimal triple, e.g. [255,0,0].
func (c RGB) Decimal() string {
	return fmt.Sprintf("[%d,%d,%d]", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// Interpolate returns the colour a fraction t of the way from c to other.
// t is clamped to [0, 1].
func (c RGB) Interpolate(other RGB, t float64) RGB {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return other
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}

// Parse reads a colour in #rrggbb, rrggbb or r,g,b form.
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(strings.Trim(s, "[]"), ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
		}
		var out [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
			}
			out[i] = uint8(v)
		}
		return RGB{R: out[0], G: out[1], B: out[2]}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
