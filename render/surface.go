// Package render draws shape collections onto a Surface, redrawing only
// what changed: structural render keys detect per-shape changes, dirty
// regions are merged and capped, and a full repaint is the fallback
// whenever selective accounting would cost more than it saves.
package render

import (
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// Surface is the contract a drawing backend fulfills. One frame is
// bracketed by BeginFrame/EndFrame; between them the engine clears regions,
// optionally clips, and draws shapes bottom-up. DrawShape runs inside a
// save/restore state scope: surface state set while drawing one shape must
// not leak into the next.
//
// A failed BeginFrame is fatal to the surface. A failed DrawShape is not:
// the engine logs it and continues with the remaining shapes, so one bad
// shape can never abort a frame.
type Surface interface {
	BeginFrame() error
	// Clear erases the given rectangle, or the whole surface when nil.
	Clear(region *geometry.Rect)
	// PushClip restricts subsequent drawing to the rectangle. Clips nest;
	// each PushClip is undone by one PopClip.
	PushClip(region geometry.Rect)
	PopClip()
	DrawShape(s *shape.Shape) error
	EndFrame() error
	Resize(width, height float64)
	Size() geometry.Size
}
