package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
	"github.com/kelibst/praise-present-v2-sub002/schedule"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

type stubSurface struct {
	width, height float64
	drawn         []string
}

func newStubSurface(w, h float64) *stubSurface  { return &stubSurface{width: w, height: h} }
func (s *stubSurface) BeginFrame() error        { return nil }
func (s *stubSurface) EndFrame() error          { return nil }
func (s *stubSurface) Clear(*geometry.Rect)     {}
func (s *stubSurface) PushClip(geometry.Rect)   {}
func (s *stubSurface) PopClip()                 {}
func (s *stubSurface) Resize(w, h float64)      { s.width, s.height = w, h }
func (s *stubSurface) Size() geometry.Size      { return geometry.Sz(s.width, s.height) }
func (s *stubSurface) DrawShape(sh *shape.Shape) error {
	s.drawn = append(s.drawn, sh.ID)
	return nil
}

// slideConverter renders any string content as a single full-width title.
func slideConverter(content any, slideSize geometry.Size) ([]*layout.Responsive, error) {
	text, ok := content.(string)
	if !ok {
		return nil, errors.New("content must be a string")
	}
	title := shape.NewText("title", geometry.Pt(0, 0), geometry.Sz(0, 0), shape.TextData{
		Content: text,
		Style:   shape.TextStyle{Font: "sans", Color: geometry.White, Align: "center"},
	})
	wrap := layout.NewResponsive(title)
	wrap.SetPosition(&layout.FlexPoint{X: layout.Percent(10), Y: layout.Percent(40)})
	wrap.SetSize(&layout.FlexSize{Width: layout.Percent(80), Height: layout.Percent(20)})
	wrap.Typography = &layout.TypographyConfig{BaseSize: layout.Px(48), MinSize: 12, MaxSize: 96}
	return []*layout.Responsive{wrap}, nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(Options{Converter: ConverterFunc(slideConverter)})
	t.Cleanup(m.Close)
	return m
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	m := newTestManager(t)
	if err := m.Register("main", newStubSurface(1920, 1080), geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Register("main", newStubSurface(800, 600), geometry.Sz(800, 600), schedule.Low, false); err == nil {
		t.Fatalf("duplicate Register succeeded")
	}
	if !m.Unregister("main") {
		t.Fatalf("Unregister known viewport = false")
	}
	if m.Unregister("main") {
		t.Fatalf("Unregister unknown viewport = true")
	}
}

func TestRegisterRejectsAnEmptyID(t *testing.T) {
	m := newTestManager(t)
	if err := m.Register("", newStubSurface(1920, 1080), geometry.Sz(1920, 1080), schedule.High, true); err == nil {
		t.Fatalf("Register with empty id succeeded")
	}
}

func TestRequestsRequireARegisteredViewport(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.RequestRender("ghost", "hello", schedule.Immediate); err == nil {
		t.Fatalf("RequestRender on unknown viewport succeeded")
	}
	if _, err := m.RequestTextEdit("ghost", "t1", "a", ""); err == nil {
		t.Fatalf("RequestTextEdit on unknown viewport succeeded")
	}
	if _, err := m.RequestPropertyChange("ghost", nil); err == nil {
		t.Fatalf("RequestPropertyChange on unknown viewport succeeded")
	}
}

func TestImmediateRenderProducesASnapshot(t *testing.T) {
	m := newTestManager(t)
	surface := newStubSurface(1920, 1080)
	if err := m.Register("main", surface, geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}

	id, err := m.RequestRender("main", "Amazing Grace", schedule.Immediate)
	if err != nil {
		t.Fatalf("RequestRender: %v", err)
	}
	if id == "" {
		t.Fatalf("RequestRender returned an empty id")
	}

	if len(surface.drawn) == 0 {
		t.Fatalf("nothing was drawn")
	}
	slide, ok := m.Snapshot("main")
	if !ok {
		t.Fatalf("no snapshot after render")
	}
	if slide.Metadata.ShapeCount != 1 || len(slide.Shapes) != 1 {
		t.Fatalf("snapshot shape count = %d", slide.Metadata.ShapeCount)
	}
	if slide.Shapes[0].Text != "Amazing Grace" {
		t.Fatalf("snapshot text = %q", slide.Shapes[0].Text)
	}

	metrics := m.Metrics()
	if metrics.RenderCount != 1 || metrics.ActiveViewports != 1 {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestConversionFailureRendersTheErrorSlide(t *testing.T) {
	m := newTestManager(t)
	surface := newStubSurface(1920, 1080)
	if err := m.Register("main", surface, geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := m.RequestRender("main", 42, schedule.Immediate); err != nil {
		t.Fatalf("RequestRender: %v", err)
	}

	found := false
	for _, id := range surface.drawn {
		if id == "error-title" {
			found = true
		}
	}
	if !found {
		t.Fatalf("error slide was not drawn; drawn = %v", surface.drawn)
	}
	if m.Metrics().ConversionErrors != 1 {
		t.Fatalf("ConversionErrors = %d", m.Metrics().ConversionErrors)
	}
}

func TestTextEditRequiresAnEditableViewport(t *testing.T) {
	m := newTestManager(t)
	if err := m.Register("live", newStubSurface(1920, 1080), geometry.Sz(1920, 1080), schedule.High, false); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.RequestTextEdit("live", "title", "new", "old"); err == nil {
		t.Fatalf("text edit on a read-only viewport succeeded")
	}
}

func TestTextEditUpdatesTheScene(t *testing.T) {
	m := newTestManager(t)
	surface := newStubSurface(1920, 1080)
	if err := m.Register("edit", surface, geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.RequestRender("edit", "Hello", schedule.Immediate); err != nil {
		t.Fatalf("RequestRender: %v", err)
	}

	if _, err := m.RequestTextEdit("edit", "title", "Hello, world", "Hello"); err != nil {
		t.Fatalf("RequestTextEdit: %v", err)
	}
	m.Flush()

	slide, ok := m.Snapshot("edit")
	if !ok {
		t.Fatalf("no snapshot after edit")
	}
	if got := slide.Shapes[0].Text; got != "Hello, world" {
		t.Fatalf("text after edit = %q", got)
	}
}

func TestPropertyChangeAppliesValues(t *testing.T) {
	m := newTestManager(t)
	surface := newStubSurface(1920, 1080)
	if err := m.Register("main", surface, geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.RequestRender("main", "Hello", schedule.Immediate); err != nil {
		t.Fatalf("RequestRender: %v", err)
	}

	if _, err := m.RequestPropertyChange("main", map[string]any{
		"title": map[string]any{"opacity": 0.5, "visible": true, "zIndex": 7},
	}); err != nil {
		t.Fatalf("RequestPropertyChange: %v", err)
	}
	m.Flush()

	slide, ok := m.Snapshot("main")
	if !ok {
		t.Fatalf("no snapshot after property change")
	}
	rec := slide.Shapes[0]
	if rec.Opacity != 0.5 || rec.ZIndex != 7 {
		t.Fatalf("properties not applied: %+v", rec)
	}
}

func TestResizeReachesSurfaceAndLayout(t *testing.T) {
	m := newTestManager(t)
	surface := newStubSurface(1920, 1080)
	if err := m.Register("main", surface, geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.RequestRender("main", "Hello", schedule.Immediate); err != nil {
		t.Fatalf("RequestRender: %v", err)
	}

	if _, err := m.RequestResize("main", 960, 540); err != nil {
		t.Fatalf("RequestResize: %v", err)
	}
	m.Flush()

	if surface.width != 960 || surface.height != 540 {
		t.Fatalf("surface size after resize = %gx%g", surface.width, surface.height)
	}
	slide, _ := m.Snapshot("main")
	if got := slide.Shapes[0].Width; got != 768 { // 80% of 960
		t.Fatalf("title width after resize = %g", got)
	}
}

func TestSnapshotExpiresAfterTTL(t *testing.T) {
	m := NewManager(Options{
		Converter:   ConverterFunc(slideConverter),
		SnapshotTTL: 20 * time.Millisecond,
	})
	defer m.Close()
	if err := m.Register("main", newStubSurface(1920, 1080), geometry.Sz(1920, 1080), schedule.High, true); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.RequestRender("main", "Hello", schedule.Immediate); err != nil {
		t.Fatalf("RequestRender: %v", err)
	}

	if _, ok := m.Snapshot("main"); !ok {
		t.Fatalf("snapshot missing right after render")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := m.Snapshot("main"); ok {
		t.Fatalf("snapshot survived past its TTL")
	}
}

func TestErrorSlideMentionsTheFailure(t *testing.T) {
	items := ErrorSlide("content must be a string", geometry.Sz(1920, 1080))
	if len(items) != 3 {
		t.Fatalf("error slide has %d shapes", len(items))
	}
	var detail string
	for _, item := range items {
		if item.Shape.Kind == shape.KindText && item.Shape.ID == "error-detail" {
			detail = item.Shape.Text.Content
		}
	}
	if !strings.Contains(detail, "content must be a string") {
		t.Fatalf("detail text = %q", detail)
	}
}
