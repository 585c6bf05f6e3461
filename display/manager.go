// Package display coordinates rendering engines across viewports: it owns
// the shared update scheduler, converts content into shape trees, keeps a
// snapshot of the last slide sent to each viewport, and substitutes an
// error slide when conversion fails so the display never goes blank.
package display

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/render"
	"github.com/kelibst/praise-present-v2-sub002/schedule"
	"github.com/kelibst/praise-present-v2-sub002/shape"
	"github.com/kelibst/praise-present-v2-sub002/wire"
)

// Converter turns application content into positioned responsive shapes.
// The manager only requires the result to be valid shapes for the given
// slide size.
type Converter interface {
	Convert(content any, slideSize geometry.Size) ([]*layout.Responsive, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(content any, slideSize geometry.Size) ([]*layout.Responsive, error)

func (f ConverterFunc) Convert(content any, slideSize geometry.Size) ([]*layout.Responsive, error) {
	return f(content, slideSize)
}

// Options configures a Manager.
type Options struct {
	// Converter handles content render requests. Required for
	// RequestRender with content; text edits and property changes work
	// without one.
	Converter Converter
	// Scheduler tunes the shared update scheduler.
	Scheduler schedule.Options
	// Render tunes each viewport's selective renderer.
	Render render.Options
	// SnapshotTTL bounds the age of cached slide snapshots. Default 30s.
	SnapshotTTL time.Duration
	// MaintenanceInterval is how often snapshot pruning is scheduled on
	// the background tier. Default 10s.
	MaintenanceInterval time.Duration
}

type viewport struct {
	id       string
	engine   *render.Engine
	priority schedule.Priority
	editable bool
}

type snapshot struct {
	slide wire.SerializedSlide
	taken time.Time
}

type maintenancePayload struct{}

type resizePayload struct {
	width  float64
	height float64
}

// Manager registers viewports and routes update requests through one
// shared scheduler. Engine lifetime is tied to explicit registration.
type Manager struct {
	mu        sync.Mutex
	opts      Options
	sched     *schedule.Scheduler
	viewports map[string]*viewport
	snapshots map[string]snapshot
	maint     *time.Timer
	closed    bool

	conversionErrors int64
}

// NewManager creates a manager and starts its maintenance cycle.
func NewManager(opts Options) *Manager {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 30 * time.Second
	}
	if opts.MaintenanceInterval <= 0 {
		opts.MaintenanceInterval = 10 * time.Second
	}
	if opts.Render == (render.Options{}) {
		opts.Render = render.DefaultOptions()
	}
	m := &Manager{
		opts:      opts,
		viewports: map[string]*viewport{},
		snapshots: map[string]snapshot{},
	}
	m.sched = schedule.New(m.process, opts.Scheduler)
	m.maint = time.AfterFunc(opts.MaintenanceInterval, m.scheduleMaintenance)
	return m
}

// Close stops the scheduler and maintenance. Registered surfaces stay
// owned by their callers.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	if m.maint != nil {
		m.maint.Stop()
	}
	m.mu.Unlock()
	m.sched.Close()
}

// Register attaches a surface as a named viewport. The default priority
// applies to render requests that do not specify one; editable gates text
// edits.
func (m *Manager) Register(viewportID string, surface render.Surface, dimensions geometry.Size, priority schedule.Priority, editable bool) error {
	// The empty id is reserved for internal housekeeping requests; a
	// viewport named "" would share their coalescing key.
	if viewportID == "" {
		return fmt.Errorf("register: empty viewport id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("register %q: manager is closed", viewportID)
	}
	if _, ok := m.viewports[viewportID]; ok {
		return fmt.Errorf("register %q: viewport already registered", viewportID)
	}
	container := layout.Container{Width: dimensions.Width, Height: dimensions.Height, PixelDensity: 1}
	m.viewports[viewportID] = &viewport{
		id:       viewportID,
		engine:   render.NewEngine(surface, container, m.opts.Render),
		priority: priority,
		editable: editable,
	}
	return nil
}

// Unregister detaches a viewport and drops its snapshot.
func (m *Manager) Unregister(viewportID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.viewports[viewportID]
	delete(m.viewports, viewportID)
	delete(m.snapshots, viewportID)
	return ok
}

// RequestRender schedules content conversion and a render for a viewport.
// A nil content re-renders the current scene. The viewport's registered
// default applies when priority is negative.
func (m *Manager) RequestRender(viewportID string, content any, priority schedule.Priority) (string, error) {
	m.mu.Lock()
	vp, ok := m.viewports[viewportID]
	m.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("request render: no viewport %q", viewportID)
	}
	if priority < schedule.Immediate || priority > schedule.Background {
		priority = vp.priority
	}
	id := m.sched.Submit(schedule.Request{
		Type:     schedule.ContentChange,
		Viewport: viewportID,
		Priority: priority,
		Payload:  content,
	})
	return id, nil
}

// RequestTextEdit schedules a live text change for an editable viewport.
func (m *Manager) RequestTextEdit(viewportID, shapeID, newText, oldText string) (string, error) {
	m.mu.Lock()
	vp, ok := m.viewports[viewportID]
	m.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("request text edit: no viewport %q", viewportID)
	}
	if !vp.editable {
		return "", fmt.Errorf("request text edit: viewport %q is not editable", viewportID)
	}
	id := m.sched.Submit(schedule.Request{
		Type:     schedule.TextEdit,
		Viewport: viewportID,
		Priority: schedule.Medium,
		Payload:  schedule.TextEditPayload{ShapeID: shapeID, NewText: newText, OldText: oldText},
	})
	return id, nil
}

// RequestPropertyChange schedules shape property updates. Properties maps
// a shape id to its new values; recognized keys are "opacity", "visible",
// "zIndex" and "text".
func (m *Manager) RequestPropertyChange(viewportID string, properties map[string]any) (string, error) {
	m.mu.Lock()
	_, ok := m.viewports[viewportID]
	m.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("request property change: no viewport %q", viewportID)
	}
	id := m.sched.Submit(schedule.Request{
		Type:     schedule.PropertyChange,
		Viewport: viewportID,
		Priority: schedule.Medium,
		Payload:  properties,
	})
	return id, nil
}

// RequestResize schedules a viewport dimension change.
func (m *Manager) RequestResize(viewportID string, width, height float64) (string, error) {
	m.mu.Lock()
	_, ok := m.viewports[viewportID]
	m.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("request resize: no viewport %q", viewportID)
	}
	id := m.sched.Submit(schedule.Request{
		Type:     schedule.LayoutChange,
		Viewport: viewportID,
		Priority: schedule.High,
		Payload:  resizePayload{width: width, height: height},
	})
	return id, nil
}

// Cancel withdraws a pending request by id.
func (m *Manager) Cancel(requestID string) bool { return m.sched.Cancel(requestID) }

// Flush synchronously drains all pending requests. Intended for tests and
// shutdown.
func (m *Manager) Flush() { m.sched.Flush() }

// Snapshot returns the last slide serialized for a viewport, if it is
// still within the snapshot TTL.
func (m *Manager) Snapshot(viewportID string) (wire.SerializedSlide, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[viewportID]
	if !ok || time.Since(snap.taken) > m.opts.SnapshotTTL {
		return wire.SerializedSlide{}, false
	}
	return snap.slide, true
}

// process is the scheduler's dispatch target.
func (m *Manager) process(req *schedule.Request) error {
	if _, ok := req.Payload.(maintenancePayload); ok {
		m.pruneSnapshots()
		return nil
	}

	m.mu.Lock()
	vp, ok := m.viewports[req.Viewport]
	m.mu.Unlock()
	if !ok {
		// Unregistered between submit and dispatch; nothing to render.
		return nil
	}

	switch req.Type {
	case schedule.ContentChange:
		return m.renderContent(vp, req.Payload)
	case schedule.TextEdit:
		payload, ok := req.Payload.(schedule.TextEditPayload)
		if !ok {
			return fmt.Errorf("viewport %s: text edit payload is %T", vp.id, req.Payload)
		}
		if err := vp.engine.UpdateText(payload.ShapeID, payload.NewText); err != nil {
			return err
		}
		return m.renderFrame(vp)
	case schedule.PropertyChange:
		props, ok := req.Payload.(map[string]any)
		if !ok {
			return fmt.Errorf("viewport %s: property payload is %T", vp.id, req.Payload)
		}
		applyProperties(vp.engine.Scene(), props)
		return m.renderFrame(vp)
	case schedule.LayoutChange:
		if size, ok := req.Payload.(resizePayload); ok {
			vp.engine.Resize(size.width, size.height)
		} else {
			vp.engine.ForceFull("layout-change")
		}
		return m.renderFrame(vp)
	case schedule.ConfigChange:
		vp.engine.ForceFull("config-change")
		return m.renderFrame(vp)
	default:
		return fmt.Errorf("viewport %s: unknown request type %v", vp.id, req.Type)
	}
}

// renderContent converts and renders; a conversion failure renders the
// error slide instead so the viewport never goes blank, and the error is
// not retried (the content will not get better on its own).
func (m *Manager) renderContent(vp *viewport, content any) error {
	if content != nil {
		size := vp.engine.Container()
		slideSize := geometry.Sz(size.Width, size.Height)

		items, err := m.convert(content, slideSize)
		if err != nil {
			m.mu.Lock()
			m.conversionErrors++
			m.mu.Unlock()
			logx.L().Error("content conversion failed, rendering error slide",
				"viewport", vp.id, "err", err)
			items = ErrorSlide(err.Error(), slideSize)
		}
		vp.engine.SetScene(items)
	}
	return m.renderFrame(vp)
}

func (m *Manager) convert(content any, slideSize geometry.Size) ([]*layout.Responsive, error) {
	if m.opts.Converter == nil {
		return nil, fmt.Errorf("no content converter configured")
	}
	items, err := m.opts.Converter.Convert(content, slideSize)
	if err != nil {
		return nil, fmt.Errorf("convert content: %w", err)
	}
	return items, nil
}

func (m *Manager) renderFrame(vp *viewport) error {
	if _, err := vp.engine.RenderFrame(); err != nil {
		return fmt.Errorf("viewport %s: %w", vp.id, err)
	}
	m.storeSnapshot(vp)
	return nil
}

func (m *Manager) storeSnapshot(vp *viewport) {
	slide := wire.SerializeSlide(vp.id, vp.engine.Scene().All())
	m.mu.Lock()
	m.snapshots[vp.id] = snapshot{slide: slide, taken: time.Now()}
	m.mu.Unlock()
}

func (m *Manager) scheduleMaintenance() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.maint.Reset(m.opts.MaintenanceInterval)
	m.mu.Unlock()
	m.sched.Submit(schedule.Request{
		Type:     schedule.ContentChange,
		Priority: schedule.Background,
		Payload:  maintenancePayload{},
	})
}

func (m *Manager) pruneSnapshots() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, snap := range m.snapshots {
		if time.Since(snap.taken) > m.opts.SnapshotTTL {
			delete(m.snapshots, id)
		}
	}
}

// applyProperties writes recognized property values onto shapes by id.
// Unknown shapes and properties are skipped with a diagnostic.
func applyProperties(scene *shape.Collection, properties map[string]any) {
	for shapeID, raw := range properties {
		s := scene.Get(shapeID)
		if s == nil {
			logx.L().Warn("property change for unknown shape", "shape", shapeID)
			continue
		}
		values, ok := raw.(map[string]any)
		if !ok {
			logx.L().Warn("property change payload is not a map", "shape", shapeID)
			continue
		}
		for key, value := range values {
			switch key {
			case "opacity":
				if v, ok := toFloat(value); ok {
					s.Opacity = v
				}
			case "visible":
				if v, ok := value.(bool); ok {
					s.Visible = v
				}
			case "zIndex":
				if v, ok := toFloat(value); ok {
					scene.SetZIndex(shapeID, int(v))
				}
			case "text":
				if v, ok := value.(string); ok && s.Kind == shape.KindText && s.Text != nil {
					s.Text.Content = v
				}
			default:
				logx.L().Warn("unknown shape property", "shape", shapeID, "property", key)
			}
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
