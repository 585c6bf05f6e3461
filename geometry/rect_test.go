package geometry

import (
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 50, 100, 100)
	got := a.Intersect(b)
	want := NewRect(50, 50, 50, 50)
	if got != want {
		t.Fatalf("intersect mismatch: got %+v want %+v", got, want)
	}

	c := NewRect(200, 200, 10, 10)
	if !a.Intersect(c).IsEmpty() {
		t.Fatalf("disjoint rects must yield an empty intersection")
	}
	if a.Intersects(c) {
		t.Fatalf("disjoint rects must not report overlap")
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 30, 10, 10)
	got := a.Union(b)
	want := NewRect(0, 0, 30, 40)
	if got != want {
		t.Fatalf("union mismatch: got %+v want %+v", got, want)
	}

	// Empty operands contribute nothing.
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("union with empty rect changed the result: %+v", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Fatalf("union from empty rect lost the operand: %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	cases := []struct {
		p  Point
		in bool
	}{
		{Pt(10, 10), true},  // top-left edge is inside
		{Pt(29, 29), true},
		{Pt(30, 30), false}, // bottom-right edge is outside
		{Pt(9, 15), false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.p); got != tc.in {
			t.Fatalf("Contains(%+v) = %v, want %v", tc.p, got, tc.in)
		}
	}
}

func TestRectInsetBy(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	got := r.InsetBy(Edges{Top: 5, Right: 10, Bottom: 5, Left: 10})
	want := NewRect(10, 5, 80, 40)
	if got != want {
		t.Fatalf("inset mismatch: got %+v want %+v", got, want)
	}
}

func TestTransformApplyToRect(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	moved := Translation(5, -5).ApplyToRect(r)
	if moved != NewRect(15, 5, 20, 10) {
		t.Fatalf("translation mismatch: %+v", moved)
	}

	// A 90 degree rotation about the origin swaps the extents.
	rot := Rotation(math.Pi / 2).ApplyToRect(NewRect(0, 0, 20, 10))
	if math.Abs(rot.Width-10) > 1e-9 || math.Abs(rot.Height-20) > 1e-9 {
		t.Fatalf("rotation bounding box mismatch: %+v", rot)
	}
}

func TestColorNormalization(t *testing.T) {
	c := Color{R: 300, G: -10, B: 128, A: 1.5}.Clamp()
	if c != (Color{R: 255, G: 0, B: 128, A: 1}) {
		t.Fatalf("clamp mismatch: %+v", c)
	}

	hex, ok := FromHex("#3366ff")
	if !ok || hex != (Color{R: 0x33, G: 0x66, B: 0xff, A: 1}) {
		t.Fatalf("hex parse mismatch: %+v ok=%v", hex, ok)
	}
	if got := hex.Hex(); got != "#3366ff" {
		t.Fatalf("hex round trip mismatch: %s", got)
	}

	if _, ok := FromHex("not-a-color"); ok {
		t.Fatalf("malformed hex must not parse")
	}
}
