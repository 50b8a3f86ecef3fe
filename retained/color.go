package retained

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color used for cell and container backgrounds.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Hex parses "#rrggbb" into an opaque color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color: %w", err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// MustHex is Hex for compile-time constants; it panics on a bad literal.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Colorful converts to a go-colorful color for blending and distance math.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Blend mixes c toward other by t in [0, 1], in RGB space.
func (c Color) Blend(other Color, t float64) Color {
	m := c.Colorful().BlendRgb(other.Colorful(), t)
	r, g, b := m.RGB255()
	out := RGB(r, g, b)
	out.A = c.A
	return out
}

// Darken moves the color toward black by t in [0, 1].
func (c Color) Darken(t float64) Color {
	return c.Blend(Color{A: c.A}, t)
}
