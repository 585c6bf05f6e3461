package wire

import (
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// TextStyle is the wire form of a text shape's typography.
type TextStyle struct {
	Font       string  `json:"font"`
	Size       float64 `json:"size"`
	LineHeight float64 `json:"lineHeight"`
	Color      Color   `json:"color"`
	Align      string  `json:"align,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
}

// Shadow is the wire form of a drop shadow.
type Shadow struct {
	Color   Color   `json:"color"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Blur    float64 `json:"blur"`
}

// SerializedShape is one flat shape record. Identity fields are always
// present; the type-specific fields are populated only for the matching
// type and omitted otherwise.
type SerializedShape struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"` // radians about the center
	Opacity  float64 `json:"opacity"`
	ZIndex   int     `json:"zIndex"`
	Visible  bool    `json:"visible"`

	// text
	Text      string     `json:"text,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`

	// rectangle
	Fill        *Color  `json:"fill,omitempty"`
	Stroke      *Color  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Shadow      *Shadow `json:"shadow,omitempty"`

	// background
	BackgroundColor *Color `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`

	// image
	Source string `json:"source,omitempty"`
	Fit    string `json:"fit,omitempty"`
}

// Serialize flattens a shape into its wire record.
func Serialize(s *shape.Shape) SerializedShape {
	rec := SerializedShape{
		ID:       s.ID,
		Type:     s.Kind.String(),
		X:        s.Pos.X,
		Y:        s.Pos.Y,
		Width:    s.Size.Width,
		Height:   s.Size.Height,
		Rotation: s.Rotation,
		Opacity:  s.Opacity,
		ZIndex:   s.ZIndex,
		Visible:  s.Visible,
	}
	switch s.Kind {
	case shape.KindText:
		if s.Text != nil {
			rec.Text = s.Text.Content
			st := s.Text.Style
			rec.TextStyle = &TextStyle{
				Font:       st.Font,
				Size:       st.Size,
				LineHeight: st.LineHeight,
				Color:      FromColor(st.Color),
				Align:      st.Align,
				Bold:       st.Bold,
				Italic:     st.Italic,
			}
		}
	case shape.KindRectangle:
		if s.Rectangle != nil {
			rec.Radius = s.Rectangle.Radius
		}
		if s.Style.Fill != nil {
			fill := FromColor(*s.Style.Fill)
			rec.Fill = &fill
		}
		if s.Style.Stroke != nil {
			stroke := FromColor(*s.Style.Stroke)
			rec.Stroke = &stroke
		}
		rec.StrokeWidth = s.Style.StrokeWidth
		if s.Style.Shadow != nil {
			rec.Shadow = &Shadow{
				Color:   FromColor(s.Style.Shadow.Color),
				OffsetX: s.Style.Shadow.OffsetX,
				OffsetY: s.Style.Shadow.OffsetY,
				Blur:    s.Style.Shadow.Blur,
			}
		}
	case shape.KindBackground:
		if s.Background != nil {
			bg := FromColor(s.Background.Color)
			rec.BackgroundColor = &bg
			rec.BackgroundImage = s.Background.Image
		}
	case shape.KindImage:
		if s.Image != nil {
			rec.Source = s.Image.Source
			rec.Fit = string(s.Image.Fit)
		}
	}
	return rec
}

// Deserialize reconstructs a shape from its wire record. An unknown type
// name decodes to an invisible rectangle with a logged diagnostic rather
// than failing the whole slide.
func Deserialize(rec SerializedShape) *shape.Shape {
	kind, ok := shape.KindFromString(rec.Type)
	if !ok {
		logx.L().Warn("unknown shape type, substituting hidden rectangle", "type", rec.Type, "shape", rec.ID)
		s := shape.NewRectangle(rec.ID, geometry.Pt(rec.X, rec.Y), geometry.Sz(rec.Width, rec.Height), shape.RectangleData{})
		s.Visible = false
		return s
	}

	s := &shape.Shape{
		ID:       rec.ID,
		Pos:      geometry.Pt(rec.X, rec.Y),
		Size:     geometry.Sz(rec.Width, rec.Height),
		Rotation: rec.Rotation,
		Opacity:  rec.Opacity,
		ZIndex:   rec.ZIndex,
		Visible:  rec.Visible,
		Xform:    geometry.Identity(),
		Kind:     kind,
	}
	switch kind {
	case shape.KindText:
		data := shape.TextData{Content: rec.Text}
		if rec.TextStyle != nil {
			data.Style = shape.TextStyle{
				Font:       rec.TextStyle.Font,
				Size:       rec.TextStyle.Size,
				LineHeight: rec.TextStyle.LineHeight,
				Color:      rec.TextStyle.Color.ToColor(),
				Align:      rec.TextStyle.Align,
				Bold:       rec.TextStyle.Bold,
				Italic:     rec.TextStyle.Italic,
			}
		}
		s.Text = &data
	case shape.KindRectangle:
		s.Rectangle = &shape.RectangleData{Radius: rec.Radius}
		if rec.Fill != nil {
			fill := rec.Fill.ToColor()
			s.Style.Fill = &fill
		}
		if rec.Stroke != nil {
			stroke := rec.Stroke.ToColor()
			s.Style.Stroke = &stroke
		}
		s.Style.StrokeWidth = rec.StrokeWidth
		if rec.Shadow != nil {
			s.Style.Shadow = &shape.Shadow{
				Color:   rec.Shadow.Color.ToColor(),
				OffsetX: rec.Shadow.OffsetX,
				OffsetY: rec.Shadow.OffsetY,
				Blur:    rec.Shadow.Blur,
			}
		}
	case shape.KindBackground:
		data := shape.BackgroundData{Image: rec.BackgroundImage}
		if rec.BackgroundColor != nil {
			data.Color = rec.BackgroundColor.ToColor()
		}
		s.Background = &data
	case shape.KindImage:
		fit := shape.FitMode(rec.Fit)
		if fit == "" {
			fit = shape.FitContain
		}
		s.Image = &shape.ImageData{Source: rec.Source, Fit: fit}
	}
	return s
}
