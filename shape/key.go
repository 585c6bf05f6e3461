package shape

import "github.com/kelibst/praise-present-v2-sub002/geometry"

// RenderKey is the structural change-detection key for a shape: two shapes
// with equal keys draw identically. The selective rendering engine keeps the
// key from the last completed frame and marks a shape dirty when its current
// key differs. Keys are plain comparable structs, not serialized strings.
type RenderKey struct {
	ID      string
	Kind    Kind
	Visible bool
	Opacity float64
	ZIndex  int
	Bounds  geometry.Rect
	Payload PayloadKey
}

// PayloadKey covers the kind-specific fields that affect drawing. Unused
// fields stay at their zero value for other kinds, keeping the struct
// comparable across all variants.
type PayloadKey struct {
	// text
	Content    string
	Font       string
	FontSize   float64
	LineHeight float64
	TextColor  geometry.Color
	Align      string
	Bold       bool
	Italic     bool

	// rectangle / shared style
	Fill        geometry.Color
	HasFill     bool
	Stroke      geometry.Color
	HasStroke   bool
	StrokeWidth float64
	Radius      float64

	// background
	BackColor geometry.Color
	BackImage string

	// image
	Source string
	Fit    FitMode
}

// Key computes the shape's current RenderKey.
func (s *Shape) Key() RenderKey {
	key := RenderKey{
		ID:      s.ID,
		Kind:    s.Kind,
		Visible: s.Visible,
		Opacity: s.Opacity,
		ZIndex:  s.ZIndex,
		Bounds:  s.Bounds(),
	}
	if s.Style.Fill != nil {
		key.Payload.Fill = *s.Style.Fill
		key.Payload.HasFill = true
	}
	if s.Style.Stroke != nil {
		key.Payload.Stroke = *s.Style.Stroke
		key.Payload.HasStroke = true
	}
	key.Payload.StrokeWidth = s.Style.StrokeWidth

	switch s.Kind {
	case KindText:
		if s.Text != nil {
			key.Payload.Content = s.Text.Content
			key.Payload.Font = s.Text.Style.Font
			key.Payload.FontSize = s.Text.Style.Size
			key.Payload.LineHeight = s.Text.Style.LineHeight
			key.Payload.TextColor = s.Text.Style.Color
			key.Payload.Align = s.Text.Style.Align
			key.Payload.Bold = s.Text.Style.Bold
			key.Payload.Italic = s.Text.Style.Italic
		}
	case KindRectangle:
		if s.Rectangle != nil {
			key.Payload.Radius = s.Rectangle.Radius
		}
	case KindBackground:
		if s.Background != nil {
			key.Payload.BackColor = s.Background.Color
			key.Payload.BackImage = s.Background.Image
		}
	case KindImage:
		if s.Image != nil {
			key.Payload.Source = s.Image.Source
			key.Payload.Fit = s.Image.Fit
		}
	}
	return key
}
