package render

import (
	"fmt"
	"time"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
	"github.com/kelibst/praise-present-v2-sub002/shape"
	"github.com/kelibst/praise-present-v2-sub002/typography"
)

// Engine is the top-level rendering façade for one surface: it applies the
// responsive layout and typography pass to the scene, feeds the result
// through change tracking, and lets the selective engine decide how much of
// the surface to repaint.
type Engine struct {
	surface   Surface
	container layout.Container
	scene     *shape.Collection
	wrappers  map[string]*layout.Responsive
	selective *Selective
	typo      typography.SearchParams
	metrics   Metrics
}

// NewEngine creates an engine for a surface. container describes the
// surface's logical size; opts tunes the selective renderer.
func NewEngine(surface Surface, container layout.Container, opts Options) *Engine {
	return &Engine{
		surface:   surface,
		container: container,
		scene:     shape.NewCollection(),
		wrappers:  map[string]*layout.Responsive{},
		selective: NewSelective(opts),
		typo:      typography.DefaultSearchParams(),
	}
}

// SetSearchParams replaces the typography tuning constants.
func (e *Engine) SetSearchParams(p typography.SearchParams) { e.typo = p }

// Container returns the current layout container.
func (e *Engine) Container() layout.Container { return e.container }

// Scene returns the engine's shape collection. Mutations through the
// engine's own methods are tracked automatically; direct mutations are
// picked up by the next RenderFrame's change tracking.
func (e *Engine) Scene() *shape.Collection { return e.scene }

// SetScene replaces the whole scene with the given responsive shapes.
func (e *Engine) SetScene(items []*layout.Responsive) {
	e.scene.Clear()
	e.wrappers = make(map[string]*layout.Responsive, len(items))
	for _, item := range items {
		if item == nil || item.Shape == nil {
			continue
		}
		e.scene.Add(item.Shape)
		e.wrappers[item.Shape.ID] = item
	}
}

// AddShape adds one responsive shape to the scene.
func (e *Engine) AddShape(item *layout.Responsive) {
	if item == nil || item.Shape == nil {
		return
	}
	e.scene.Add(item.Shape)
	e.wrappers[item.Shape.ID] = item
}

// RemoveShape removes a shape; the vacated area is repainted next frame.
func (e *Engine) RemoveShape(id string) bool {
	delete(e.wrappers, id)
	return e.scene.Remove(id)
}

// UpdateText replaces a text shape's content.
func (e *Engine) UpdateText(shapeID, newText string) error {
	s := e.scene.Get(shapeID)
	if s == nil {
		return fmt.Errorf("update text: no shape %q", shapeID)
	}
	if s.Kind != shape.KindText || s.Text == nil {
		return fmt.Errorf("update text: shape %q is %s, not text", shapeID, s.Kind)
	}
	s.Text.Content = newText
	return nil
}

// Resize updates the container and surface dimensions and forces a full
// repaint, since every layout resolution changes with the container.
func (e *Engine) Resize(width, height float64) {
	e.container.Width = width
	e.container.Height = height
	e.surface.Resize(width, height)
	for _, w := range e.wrappers {
		w.InvalidateLayout()
	}
	e.selective.ForceFull("resize")
}

// ForceFull requests a full repaint on the next frame.
func (e *Engine) ForceFull(cause string) { e.selective.ForceFull(cause) }

// MarkRegion records an externally known dirty rectangle.
func (e *Engine) MarkRegion(bounds geometry.Rect, priority int, cause string, shapeIDs ...string) {
	e.selective.MarkRegion(NewRegion(bounds, priority, cause, shapeIDs...))
}

// RenderFrame runs one complete pass: layout, typography, change tracking,
// then the full/selective/skip render decision.
func (e *Engine) RenderFrame() (FrameStats, error) {
	start := time.Now()

	e.applyLayout()
	_, unchanged := e.selective.TrackChanges(e.scene, 0)
	stats, err := e.selective.Render(e.surface, e.scene)

	e.metrics.record(stats, unchanged, time.Since(start))
	return stats, err
}

// applyLayout resolves every responsive wrapper against the container and,
// for text shapes with a typography config, computes the final font size:
// scale curve first, then the readability hill-climb, then the fit search
// so the result always fits its box.
func (e *Engine) applyLayout() {
	for _, s := range e.scene.All() {
		w, ok := e.wrappers[s.ID]
		if !ok {
			continue
		}
		rect := w.ApplyTo(e.container)

		if s.Kind != shape.KindText || s.Text == nil || w.Typography == nil {
			continue
		}
		cfg := *w.Typography
		content := s.Text.Content
		size := typography.CalculateFontSize(cfg, e.container, len(content), e.typo)
		size = typography.OptimizeForReadability(cfg, content, rect.Size(), size, e.typo)
		size = typography.FindOptimalFitSize(cfg, content, rect.Size(), size, e.typo)
		s.Text.Style.Size = size
		s.Text.Style.LineHeight = size * cfg.LineHeight()
	}
}

// Metrics returns a snapshot of the engine's render counters.
func (e *Engine) Metrics() MetricsSnapshot { return e.metrics.Snapshot() }

// Dirty reports whether the next RenderFrame would paint anything, given
// the currently tracked changes. Layout changes applied during RenderFrame
// can still dirty a frame that looks clean here.
func (e *Engine) Dirty() bool { return e.selective.Dirty() }
