// Package geometry provides the primitive value types the rendering
// pipeline is built on: points, sizes, rectangles, colors and 2D affine
// transforms. All coordinates are float64 pixels with the origin at the
// top-left corner, y growing downward.
package geometry

import "math"

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p shifted by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p shifted by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Area returns width*height, or 0 for an empty size.
func (s Size) Area() float64 {
	if s.IsEmpty() {
		return 0
	}
	return s.Width * s.Height
}

// AspectRatio returns width/height, or 0 when the height is zero.
func (s Size) AspectRatio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}
