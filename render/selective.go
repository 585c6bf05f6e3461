package render

import (
	"fmt"

	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// Options configures the selective engine.
type Options struct {
	// Selective disables partial repaints when false; every render is full.
	Selective bool
	// MinRegionArea discards dirty regions smaller than this many px².
	MinRegionArea float64
	// MaxRegions forces a full repaint when more regions accumulate.
	MaxRegions int
}

// DefaultOptions returns the tuned defaults with selective mode on.
func DefaultOptions() Options {
	return Options{Selective: true, MinRegionArea: 64, MaxRegions: 20}
}

// FrameKind describes what a render pass did.
type FrameKind int

const (
	FrameSkipped FrameKind = iota
	FrameSelective
	FrameFull
)

func (k FrameKind) String() string {
	switch k {
	case FrameSelective:
		return "selective"
	case FrameFull:
		return "full"
	default:
		return "skipped"
	}
}

// FrameStats summarizes one render pass.
type FrameStats struct {
	Kind         FrameKind
	ShapesDrawn  int
	ShapeErrors  int
	RegionsDrawn int
}

// Selective tracks per-shape render keys between frames, accumulates dirty
// regions, and decides between a full, selective or skipped render.
// Per-shape state moves clean -> dirty on a key change and back to clean
// once the shape has been drawn.
type Selective struct {
	opts        Options
	keys        map[string]shape.RenderKey
	regions     regionSet
	globalDirty bool
	dirtyCause  string
}

// NewSelective creates an engine; the first render is always full since no
// prior keys exist.
func NewSelective(opts Options) *Selective {
	if opts.MaxRegions <= 0 {
		opts.MaxRegions = DefaultOptions().MaxRegions
	}
	return &Selective{
		opts: opts,
		keys: map[string]shape.RenderKey{},
		regions: regionSet{
			minArea:    opts.MinRegionArea,
			maxRegions: opts.MaxRegions,
		},
		globalDirty: true,
		dirtyCause:  "initial",
	}
}

// ForceFull marks the whole surface dirty; the next render repaints
// everything. Resize and unrecoverable region errors land here.
func (e *Selective) ForceFull(cause string) {
	e.globalDirty = true
	e.dirtyCause = cause
}

// MarkRegion records an externally known dirty rectangle.
func (e *Selective) MarkRegion(r Region) {
	e.regions.Add(r)
}

// TrackChanges diffs the collection against the keys of the last completed
// frame and turns every difference into dirty regions: a moved shape
// dirties both its old and new bounds, a removed shape its old bounds, a
// new or restyled shape its current bounds. It returns how many shapes
// changed and how many were served unchanged from the key snapshot.
func (e *Selective) TrackChanges(shapes *shape.Collection, priority int) (changed, unchanged int) {
	seen := make(map[string]struct{}, shapes.Len())
	for _, s := range shapes.All() {
		seen[s.ID] = struct{}{}
		key := s.Key()
		prev, ok := e.keys[s.ID]
		if !ok {
			// No prior key forces dirty.
			e.regions.Add(NewRegion(key.Bounds, priority, "added", s.ID))
			changed++
			continue
		}
		if prev == key {
			unchanged++
			continue
		}
		changed++
		if prev.Bounds != key.Bounds {
			e.regions.Add(NewRegion(prev.Bounds, priority, "bounds", s.ID))
		}
		e.regions.Add(NewRegion(key.Bounds, priority, "changed", s.ID))
	}
	for id, prev := range e.keys {
		if _, ok := seen[id]; !ok {
			e.regions.Add(NewRegion(prev.Bounds, priority, "removed", id))
			delete(e.keys, id)
			changed++
		}
	}
	return changed, unchanged
}

// Render executes the render decision against the surface:
// full when selective mode is off or the global-dirty flag is set (resize,
// region overflow, unrecoverable error), selective when dirty regions
// exist, and an explicit no-op otherwise.
func (e *Selective) Render(surface Surface, shapes *shape.Collection) (FrameStats, error) {
	if !e.opts.Selective || e.globalDirty || e.regions.overflowed {
		return e.renderFull(surface, shapes)
	}
	if e.regions.Len() == 0 {
		return FrameStats{Kind: FrameSkipped}, nil
	}
	return e.renderSelective(surface, shapes)
}

func (e *Selective) renderFull(surface Surface, shapes *shape.Collection) (FrameStats, error) {
	stats := FrameStats{Kind: FrameFull}
	if err := surface.BeginFrame(); err != nil {
		return stats, fmt.Errorf("begin frame: %w", err)
	}
	surface.Clear(nil)

	e.keys = make(map[string]shape.RenderKey, shapes.Len())
	for _, s := range shapes.All() {
		if !s.Visible {
			e.keys[s.ID] = s.Key()
			continue
		}
		if e.drawShape(surface, s) {
			stats.ShapesDrawn++
		} else {
			stats.ShapeErrors++
		}
		e.keys[s.ID] = s.Key()
	}
	e.regions.Clear()
	e.globalDirty = false
	e.dirtyCause = ""

	if err := surface.EndFrame(); err != nil {
		return stats, fmt.Errorf("end frame: %w", err)
	}
	return stats, nil
}

func (e *Selective) renderSelective(surface Surface, shapes *shape.Collection) (FrameStats, error) {
	stats := FrameStats{Kind: FrameSelective}
	if err := surface.BeginFrame(); err != nil {
		return stats, fmt.Errorf("begin frame: %w", err)
	}

	for _, region := range e.regions.Sorted() {
		stats.RegionsDrawn++
		surface.PushClip(region.Bounds)
		bounds := region.Bounds
		surface.Clear(&bounds)

		for _, s := range shapes.All() {
			_, affected := region.Shapes[s.ID]
			if !s.Visible {
				// The region already erased a shape that turned
				// invisible; snapshot its key like renderFull does or
				// the same change re-dirties every frame.
				if affected {
					e.keys[s.ID] = s.Key()
				}
				continue
			}
			if !affected && !s.Bounds().Intersects(region.Bounds) {
				continue
			}
			if e.drawShape(surface, s) {
				stats.ShapesDrawn++
			} else {
				stats.ShapeErrors++
			}
			e.keys[s.ID] = s.Key()
		}
		surface.PopClip()
	}
	e.regions.Clear()

	if err := surface.EndFrame(); err != nil {
		return stats, fmt.Errorf("end frame: %w", err)
	}
	return stats, nil
}

// drawShape isolates a single shape's draw call: an error or panic is
// logged and reported as false, never propagated, so the rest of the frame
// completes.
func (e *Selective) drawShape(surface Surface, s *shape.Shape) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logx.L().Warn("draw panicked, shape skipped", "shape", s.ID, "panic", r)
			ok = false
		}
	}()
	if err := surface.DrawShape(s); err != nil {
		logx.L().Warn("draw failed, shape skipped", "shape", s.ID, "err", err)
		return false
	}
	return true
}

// Dirty reports whether the next Render would actually paint.
func (e *Selective) Dirty() bool {
	return e.globalDirty || e.regions.overflowed || e.regions.Len() > 0 || !e.opts.Selective
}

// PendingRegions returns the current dirty rectangles, highest priority
// first. Diagnostic use only.
func (e *Selective) PendingRegions() []Region { return e.regions.Sorted() }
