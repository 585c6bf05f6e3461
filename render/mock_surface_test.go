package render

import (
	"fmt"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// mockSurface records the calls a render pass makes, in order, and can be
// told to fail or panic while drawing specific shapes.
type mockSurface struct {
	size       geometry.Size
	calls      []string
	drawn      []string
	clears     []*geometry.Rect
	clipDepth  int
	failDraw   map[string]error
	panicDraw  map[string]bool
	frameOpen  bool
}

func newMockSurface(w, h float64) *mockSurface {
	return &mockSurface{
		size:      geometry.Sz(w, h),
		failDraw:  map[string]error{},
		panicDraw: map[string]bool{},
	}
}

func (m *mockSurface) BeginFrame() error {
	m.frameOpen = true
	m.calls = append(m.calls, "begin")
	return nil
}

func (m *mockSurface) Clear(region *geometry.Rect) {
	m.clears = append(m.clears, region)
	if region == nil {
		m.calls = append(m.calls, "clear-all")
	} else {
		m.calls = append(m.calls, fmt.Sprintf("clear(%.0f,%.0f,%.0fx%.0f)",
			region.X, region.Y, region.Width, region.Height))
	}
}

func (m *mockSurface) PushClip(region geometry.Rect) {
	m.clipDepth++
	m.calls = append(m.calls, "clip")
}

func (m *mockSurface) PopClip() {
	m.clipDepth--
	m.calls = append(m.calls, "unclip")
}

func (m *mockSurface) DrawShape(s *shape.Shape) error {
	if m.panicDraw[s.ID] {
		panic("mock draw panic: " + s.ID)
	}
	if err := m.failDraw[s.ID]; err != nil {
		return err
	}
	m.drawn = append(m.drawn, s.ID)
	m.calls = append(m.calls, "draw:"+s.ID)
	return nil
}

func (m *mockSurface) EndFrame() error {
	m.frameOpen = false
	m.calls = append(m.calls, "end")
	return nil
}

func (m *mockSurface) Resize(w, h float64) { m.size = geometry.Sz(w, h) }

func (m *mockSurface) Size() geometry.Size { return m.size }

func (m *mockSurface) reset() {
	m.calls = nil
	m.drawn = nil
	m.clears = nil
}
