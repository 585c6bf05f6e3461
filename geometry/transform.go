package geometry

import "math"

// Transform is a 2D affine transformation stored as a 2x3 row-major matrix:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping x' = A*x + B*y + C, y' = D*x + E*y + F.
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translation creates a translation transform.
func Translation(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scaling creates a scaling transform.
func Scaling(sx, sy float64) Transform {
	return Transform{A: sx, E: sy}
}

// Rotation creates a rotation transform; angle is in radians, positive
// rotates clockwise in the top-left-origin coordinate system.
func Rotation(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{A: cos, B: -sin, D: sin, E: cos}
}

// Mul composes the two transforms, applying other first.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply transforms the point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t == Transform{A: 1, E: 1}
}

// ApplyToRect transforms all four corners and returns their axis-aligned
// bounding rectangle. For pure translations this is exact; rotations yield
// the enclosing box.
func (t Transform) ApplyToRect(r Rect) Rect {
	if t.IsIdentity() {
		return r
	}
	corners := [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.X, Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := t.Apply(c)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
