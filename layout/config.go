package layout

import (
	"fmt"
	"math"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

// Mode selects how a shape's rectangle relates to the available area.
type Mode int

const (
	// ModeNone leaves the resolved rectangle as-is.
	ModeNone Mode = iota
	// ModeStretch fills the available area.
	ModeStretch
	// ModeCenter centers the current size in the available area.
	ModeCenter
	// ModeFitContent centers only when smaller than the available area;
	// larger content keeps its position.
	ModeFitContent
	// ModeAspectFit scales preserving aspect ratio to fit inside the
	// available area, centered.
	ModeAspectFit
	// ModeAspectFill scales preserving aspect ratio to cover the available
	// area, centered, permitting overflow.
	ModeAspectFill
)

var modeNames = [...]string{
	ModeNone:       "none",
	ModeStretch:    "stretch",
	ModeCenter:     "center",
	ModeFitContent: "fit-content",
	ModeAspectFit:  "aspect-fit",
	ModeAspectFill: "aspect-fill",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// EdgeValues holds per-side flexible spacing.
type EdgeValues struct {
	Top    Value `json:"top"`
	Right  Value `json:"right"`
	Bottom Value `json:"bottom"`
	Left   Value `json:"left"`
}

// UniformEdges returns EdgeValues with the same value on every side.
func UniformEdges(v Value) EdgeValues {
	return EdgeValues{Top: v, Right: v, Bottom: v, Left: v}
}

// Resolve converts the edges to pixels. Horizontal sides use the container
// width as percent context, vertical sides the height.
func (e EdgeValues) Resolve(c Container) geometry.Edges {
	return geometry.Edges{
		Top:    e.Top.Resolve(c, c.Height),
		Right:  e.Right.Resolve(c, c.Width),
		Bottom: e.Bottom.Resolve(c, c.Height),
		Left:   e.Left.Resolve(c, c.Width),
	}
}

// Config is a shape's layout configuration.
type Config struct {
	Mode        Mode       `json:"mode"`
	Padding     EdgeValues `json:"padding"`
	Margin      EdgeValues `json:"margin"`
	AspectRatio *float64   `json:"aspectRatio,omitempty"` // width/height; nil keeps the shape's own
	MinWidth    *float64   `json:"minWidth,omitempty"`    // pixel clamps on the resolved size
	MaxWidth    *float64   `json:"maxWidth,omitempty"`
	MinHeight   *float64   `json:"minHeight,omitempty"`
	MaxHeight   *float64   `json:"maxHeight,omitempty"`
}

// Apply positions rect within the container according to the config. The
// available area is the container minus margin and padding, both resolved to
// pixels first.
func Apply(rect geometry.Rect, cfg Config, c Container) geometry.Rect {
	avail := geometry.NewRect(0, 0, c.Width, c.Height).
		InsetBy(cfg.Margin.Resolve(c)).
		InsetBy(cfg.Padding.Resolve(c))
	if avail.IsEmpty() {
		return rect
	}

	ratio := rect.Size().AspectRatio()
	if cfg.AspectRatio != nil && *cfg.AspectRatio > 0 {
		ratio = *cfg.AspectRatio
	}

	out := rect
	switch cfg.Mode {
	case ModeNone:
		// keep the resolved rectangle
	case ModeStretch:
		out = avail
	case ModeCenter:
		out = centerIn(rect.Size(), avail)
	case ModeFitContent:
		if rect.Width <= avail.Width && rect.Height <= avail.Height {
			out = centerIn(rect.Size(), avail)
		}
	case ModeAspectFit:
		out = centerIn(scaleToFit(ratio, avail.Size()), avail)
	case ModeAspectFill:
		out = centerIn(scaleToCover(ratio, avail.Size()), avail)
	}
	return clampSize(out, cfg)
}

func centerIn(s geometry.Size, avail geometry.Rect) geometry.Rect {
	return geometry.NewRect(
		avail.X+(avail.Width-s.Width)/2,
		avail.Y+(avail.Height-s.Height)/2,
		s.Width, s.Height,
	)
}

func scaleToFit(ratio float64, avail geometry.Size) geometry.Size {
	if ratio <= 0 {
		return avail
	}
	w := avail.Width
	h := w / ratio
	if h > avail.Height {
		h = avail.Height
		w = h * ratio
	}
	return geometry.Sz(w, h)
}

func scaleToCover(ratio float64, avail geometry.Size) geometry.Size {
	if ratio <= 0 {
		return avail
	}
	w := avail.Width
	h := w / ratio
	if h < avail.Height {
		h = avail.Height
		w = h * ratio
	}
	return geometry.Sz(w, h)
}

// clampSize applies the config's pixel size clamps, keeping the rectangle
// centered on its previous center.
func clampSize(r geometry.Rect, cfg Config) geometry.Rect {
	w, h := r.Width, r.Height
	if cfg.MinWidth != nil {
		w = math.Max(w, *cfg.MinWidth)
	}
	if cfg.MaxWidth != nil {
		w = math.Min(w, *cfg.MaxWidth)
	}
	if cfg.MinHeight != nil {
		h = math.Max(h, *cfg.MinHeight)
	}
	if cfg.MaxHeight != nil {
		h = math.Min(h, *cfg.MaxHeight)
	}
	if w == r.Width && h == r.Height {
		return r
	}
	c := r.Center()
	return geometry.NewRect(c.X-w/2, c.Y-h/2, w, h)
}
