package geometry

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color holds a normalized color: 0-255 channel components plus an alpha in
// [0,1]. This is the single color representation used across the shape model
// and the wire protocol, whatever form (hex, rgb(), component record) the
// color originally arrived in.
type Color struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}

// RGB creates an opaque color from 0-255 components.
func RGB(r, g, b int) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA creates a color from 0-255 components and a [0,1] alpha.
func RGBA(r, g, b int, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// White is the normalization fallback for unrecognized color inputs.
var White = Color{R: 255, G: 255, B: 255, A: 1}

// Black is fully opaque black.
var Black = Color{R: 0, G: 0, B: 0, A: 1}

// Clamp returns the color with channels limited to 0-255 and alpha to [0,1].
func (c Color) Clamp() Color {
	clampChan := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return Color{R: clampChan(c.R), G: clampChan(c.G), B: clampChan(c.B), A: a}
}

// ToColor converts to the standard library color.Color (non-premultiplied).
func (c Color) ToColor() color.Color {
	cc := c.Clamp()
	return color.NRGBA{
		R: uint8(cc.R),
		G: uint8(cc.G),
		B: uint8(cc.B),
		A: uint8(cc.A*255 + 0.5),
	}
}

// Hex formats the color as a lowercase #rrggbb string. Alpha is not encoded;
// use the component form when alpha matters.
func (c Color) Hex() string {
	cc := c.Clamp()
	return colorful.Color{
		R: float64(cc.R) / 255,
		G: float64(cc.G) / 255,
		B: float64(cc.B) / 255,
	}.Hex()
}

// FromHex parses a #rrggbb hex string. The ok result is false for malformed
// input, in which case the color is White.
func FromHex(s string) (Color, bool) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return White, false
	}
	r, g, b := cf.RGB255()
	return Color{R: int(r), G: int(g), B: int(b), A: 1}, true
}

// WithAlpha returns the color with the alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c.Clamp()
}
