// Package palette defines the 8-bit colors the painter draws with and the
// main/help color pair picked from the HSV wheel.
package palette

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
	// Transparent clears to zero alpha.
	Transparent = Color{}
	// Checker is the grey of the transparency checkerboard.
	Checker = Color{191, 191, 191, 255}
)

var _ color.Color = Color{}

func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromFloat converts components in [0, 1]; out of range values are clamped.
func FromFloat(r, g, b, a float64) Color {
	return Color{toByte(r), toByte(g), toByte(b), toByte(a)}
}

// FromHSV converts a hue in radians plus saturation and value in [0, 1].
func FromHSV(h, s, v float64) Color {
	h = h / (math.Pi / 3)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))

	var r, g, b float64
	switch {
	case h >= 0 && h < 1:
		r, g, b = c, x, 0
	case h >= 1 && h < 2:
		r, g, b = x, c, 0
	case h >= 2 && h < 3:
		r, g, b = 0, c, x
	case h >= 3 && h < 4:
		r, g, b = 0, x, c
	case h >= 4 && h < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := v - c
	return FromFloat(r+m, g+m, b+m, 1)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Floats returns the components scaled to [0, 1].
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Style formats the color as a CSS rgba() value.
func (c Color) Style() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

func toByte(v float64) uint8 {
	i := int(v * 255)
	switch {
	case i > 255:
		return 255
	case i < 0:
		return 0
	}
	return uint8(i)
}

// PickHSV maps a point on the unit HSV wheel to a color. Points outside the
// wheel are pulled onto its edge; the returned point is where the picker
// marker should be drawn.
func PickHSV(p mgl64.Vec2) (Color, mgl64.Vec2) {
	if p[0] == 0 && p[1] == 0 {
		return White, p
	}

	dist := p.Len()
	norm := p.Normalize()
	if dist >= 1 {
		dist = 1
		p = norm
	}

	angle := math.Acos(norm[0])
	if norm[1] <= 0 {
		angle = 2*math.Pi - angle
	}

	return FromHSV(angle, dist, 1), p
}

// ParseHex parses "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
