package layout

import (
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// FlexPoint is a position expressed in flexible values. X resolves against
// the container width, Y against the height.
type FlexPoint struct {
	X Value `json:"x"`
	Y Value `json:"y"`
}

// FlexSize is a size expressed in flexible values.
type FlexSize struct {
	Width  Value `json:"width"`
	Height Value `json:"height"`
}

// ScaleMode selects the typography scale curve relative to the reference
// container.
type ScaleMode int

const (
	// ScaleLinear multiplies by the direct container ratio.
	ScaleLinear ScaleMode = iota
	// ScaleLogarithmic dampens the ratio for extreme container sizes.
	ScaleLogarithmic
	// ScaleStepped snaps the ratio to discrete buckets
	// (0.5, 0.75, 1.0, 1.5, 2.0).
	ScaleStepped
	// ScaleFluid interpolates linearly, clamped between MinScale and
	// MaxScale.
	ScaleFluid
)

// TypographyConfig drives font sizing for a text shape. BaseSize resolves
// through the flexible-unit system; the typography package applies the scale
// curve and clamps.
type TypographyConfig struct {
	BaseSize        Value     `json:"baseSize"`
	Mode            ScaleMode `json:"mode"`
	MinSize         float64   `json:"minSize"`         // pixel floor, 0 = none
	MaxSize         float64   `json:"maxSize"`         // pixel ceiling, 0 = none
	LineHeightRatio float64   `json:"lineHeightRatio"` // 0 = default 1.4
	MinScale        float64   `json:"minScale,omitempty"`
	MaxScale        float64   `json:"maxScale,omitempty"`
}

// LineHeight returns the configured line-height ratio, defaulting to 1.4
// the way the document renderer does when an author omits it.
func (t TypographyConfig) LineHeight() float64 {
	if t.LineHeightRatio > 0 {
		return t.LineHeightRatio
	}
	return 1.4
}

// Responsive wraps a shape with its flexible position/size, layout config,
// breakpoints and, for text, typography. Resolved pixel bounds are cached
// per container signature; any mutation through the setters invalidates the
// cache.
type Responsive struct {
	Shape       *shape.Shape
	Position    *FlexPoint
	Size        *FlexSize
	Config      Config
	Breakpoints []Breakpoint
	Typography  *TypographyConfig

	cache map[Signature]geometry.Rect
}

// NewResponsive wraps a shape with no flexible values; Resolve then returns
// the shape's own pixel bounds.
func NewResponsive(s *shape.Shape) *Responsive {
	return &Responsive{Shape: s}
}

// SetPosition replaces the flexible position and invalidates the cache.
func (r *Responsive) SetPosition(p *FlexPoint) {
	r.Position = p
	r.InvalidateLayout()
}

// SetSize replaces the flexible size and invalidates the cache.
func (r *Responsive) SetSize(s *FlexSize) {
	r.Size = s
	r.InvalidateLayout()
}

// SetConfig replaces the layout config and invalidates the cache.
func (r *Responsive) SetConfig(cfg Config) {
	r.Config = cfg
	r.InvalidateLayout()
}

// SetBreakpoints replaces the breakpoint list and invalidates the cache.
func (r *Responsive) SetBreakpoints(bps []Breakpoint) {
	r.Breakpoints = bps
	r.InvalidateLayout()
}

// InvalidateLayout drops all cached resolutions. Call it after mutating the
// flexible values in place.
func (r *Responsive) InvalidateLayout() { r.cache = nil }

// Resolve computes the shape's pixel rectangle for the container: flexible
// position and size first, then the effective (breakpoint-merged) layout
// mode. Results are cached by container signature.
func (r *Responsive) Resolve(c Container) geometry.Rect {
	sig := c.Signature()
	if cached, ok := r.cache[sig]; ok {
		return cached
	}

	rect := geometry.RectFrom(r.Shape.Pos, r.Shape.Size)
	if r.Position != nil {
		rect.X = r.Position.X.Resolve(c, c.Width)
		rect.Y = r.Position.Y.Resolve(c, c.Height)
	}
	if r.Size != nil {
		rect.Width = r.Size.Width.Resolve(c, c.Width)
		rect.Height = r.Size.Height.Resolve(c, c.Height)
	}
	rect = Apply(rect, EffectiveConfig(r.Config, r.Breakpoints, c), c)

	if r.cache == nil {
		r.cache = map[Signature]geometry.Rect{}
	}
	r.cache[sig] = rect
	return rect
}

// ApplyTo resolves the rectangle and writes it back onto the shape's pixel
// position and size, returning the rectangle.
func (r *Responsive) ApplyTo(c Container) geometry.Rect {
	rect := r.Resolve(c)
	r.Shape.Pos = rect.Pos()
	r.Shape.Size = rect.Size()
	return rect
}
