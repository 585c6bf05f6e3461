package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

func flexTextShape() *Responsive {
	s := shape.NewText("t1", geometry.Pt(33, 77), geometry.Sz(10, 10), shape.TextData{Content: "x"})
	r := NewResponsive(s)
	r.SetPosition(&FlexPoint{X: Percent(50), Y: Percent(50)})
	r.SetSize(&FlexSize{Width: Percent(80), Height: Percent(20)})
	r.SetConfig(Config{Mode: ModeCenter})
	return r
}

func TestResolveCenteredFlexShape(t *testing.T) {
	// 80%x20% of 1920x1080 centered: 1536x216 at (192, 432), regardless of
	// the shape's original pixel position.
	r := flexTextShape()
	got := r.Resolve(Container{Width: 1920, Height: 1080})
	assert.Equal(t, geometry.NewRect(192, 432, 1536, 216), got)
}

func TestResolveCacheInvalidation(t *testing.T) {
	r := flexTextShape()
	c := Container{Width: 1920, Height: 1080}

	first := r.Resolve(c)
	assert.Equal(t, first, r.Resolve(c), "repeated resolve must hit the cache")

	// A different container signature resolves fresh.
	small := r.Resolve(Container{Width: 960, Height: 540})
	assert.Equal(t, geometry.NewRect(96, 216, 768, 108), small)

	// Mutating the flexible values drops cached entries.
	r.SetSize(&FlexSize{Width: Percent(50), Height: Percent(50)})
	assert.Equal(t, geometry.NewRect(480, 270, 960, 540), r.Resolve(c))
}

func TestResolveWithoutFlexValues(t *testing.T) {
	s := shape.NewRectangle("r", geometry.Pt(10, 20), geometry.Sz(30, 40), shape.RectangleData{})
	r := NewResponsive(s)
	got := r.Resolve(Container{Width: 1920, Height: 1080})
	assert.Equal(t, geometry.NewRect(10, 20, 30, 40), got)
}

func TestApplyToWritesBack(t *testing.T) {
	r := flexTextShape()
	rect := r.ApplyTo(Container{Width: 1920, Height: 1080})
	assert.Equal(t, rect.Pos(), r.Shape.Pos)
	assert.Equal(t, rect.Size(), r.Shape.Size)
}
