// Package shape defines the drawing primitives a slide is composed of and
// the ordered collection that owns them. A Shape is a closed tagged variant
// over text, background, rectangle and image kinds; draw and serialize
// sites switch exhaustively on Kind instead of inspecting runtime types.
package shape

import (
	"fmt"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

// Kind discriminates the shape variants.
type Kind int

const (
	KindText Kind = iota
	KindBackground
	KindRectangle
	KindImage
)

var kindNames = [...]string{
	KindText:       "text",
	KindBackground: "background",
	KindRectangle:  "rectangle",
	KindImage:      "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindFromString maps a wire name back to a Kind.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// FitMode controls how an image is scaled into its box.
type FitMode string

const (
	FitContain FitMode = "contain"
	FitCover   FitMode = "cover"
	FitStretch FitMode = "stretch"
)

// Shadow describes a drop shadow in the shared style bag.
type Shadow struct {
	Color   geometry.Color `json:"color"`
	OffsetX float64        `json:"offsetX"`
	OffsetY float64        `json:"offsetY"`
	Blur    float64        `json:"blur"`
}

// Style is the shared style bag. Nil pointers mean "not set"; a rectangle
// without a fill is stroke-only, a text shape ignores Fill entirely.
type Style struct {
	Fill        *geometry.Color `json:"fill,omitempty"`
	Stroke      *geometry.Color `json:"stroke,omitempty"`
	StrokeWidth float64         `json:"strokeWidth,omitempty"`
	Shadow      *Shadow         `json:"shadow,omitempty"`
}

// TextStyle carries the resolved typography for a text shape. Size and
// LineHeight are pixels; the typography package fills them in from the
// shape's flexible configuration before drawing.
type TextStyle struct {
	Font       string         `json:"font"`
	Size       float64        `json:"size"`
	LineHeight float64        `json:"lineHeight"`
	Color      geometry.Color `json:"color"`
	Align      string         `json:"align,omitempty"` // left (default) / center / right
	Bold       bool           `json:"bold,omitempty"`
	Italic     bool           `json:"italic,omitempty"`
}

// TextData is the payload of a KindText shape.
type TextData struct {
	Content string    `json:"content"`
	Style   TextStyle `json:"style"`
}

// RectangleData is the payload of a KindRectangle shape.
type RectangleData struct {
	Radius float64 `json:"radius,omitempty"` // corner radius in pixels
}

// BackgroundData is the payload of a KindBackground shape. Either a solid
// color or an image reference; when both are set the image wins and the
// color shows through transparent areas.
type BackgroundData struct {
	Color geometry.Color `json:"color"`
	Image string         `json:"image,omitempty"`
}

// ImageData is the payload of a KindImage shape.
type ImageData struct {
	Source string  `json:"source"`
	Fit    FitMode `json:"fit,omitempty"`
}

// Shape is one positioned drawing primitive. Exactly the payload field
// matching Kind is non-nil; the constructors below enforce this.
type Shape struct {
	ID       string             `json:"id"`
	Pos      geometry.Point     `json:"pos"`
	Size     geometry.Size      `json:"size"`
	Rotation float64            `json:"rotation,omitempty"` // radians, about the shape center
	Opacity  float64            `json:"opacity"`            // [0,1]
	ZIndex   int                `json:"zIndex"`
	Visible  bool               `json:"visible"`
	Xform    geometry.Transform `json:"-"` // layered on top of Pos/Size
	Style    Style              `json:"style"`

	Kind       Kind            `json:"kind"`
	Text       *TextData       `json:"text,omitempty"`
	Rectangle  *RectangleData  `json:"rectangle,omitempty"`
	Background *BackgroundData `json:"background,omitempty"`
	Image      *ImageData      `json:"image,omitempty"`
}

// NewText creates a text shape.
func NewText(id string, pos geometry.Point, size geometry.Size, data TextData) *Shape {
	return &Shape{
		ID: id, Pos: pos, Size: size, Opacity: 1, Visible: true,
		Xform: geometry.Identity(),
		Kind:  KindText, Text: &data,
	}
}

// NewRectangle creates a rectangle shape.
func NewRectangle(id string, pos geometry.Point, size geometry.Size, data RectangleData) *Shape {
	return &Shape{
		ID: id, Pos: pos, Size: size, Opacity: 1, Visible: true,
		Xform: geometry.Identity(),
		Kind:  KindRectangle, Rectangle: &data,
	}
}

// NewBackground creates a background shape spanning the given size at the
// origin. Backgrounds conventionally sit at the lowest z-index.
func NewBackground(id string, size geometry.Size, data BackgroundData) *Shape {
	return &Shape{
		ID: id, Size: size, Opacity: 1, Visible: true, ZIndex: -1000,
		Xform: geometry.Identity(),
		Kind:  KindBackground, Background: &data,
	}
}

// NewImage creates an image shape.
func NewImage(id string, pos geometry.Point, size geometry.Size, data ImageData) *Shape {
	if data.Fit == "" {
		data.Fit = FitContain
	}
	return &Shape{
		ID: id, Pos: pos, Size: size, Opacity: 1, Visible: true,
		Xform: geometry.Identity(),
		Kind:  KindImage, Image: &data,
	}
}

// Bounds returns the axis-aligned bounding rectangle of the shape, derived
// purely from Pos, Size, Rotation and Xform. It never mutates the shape.
func (s *Shape) Bounds() geometry.Rect {
	r := geometry.RectFrom(s.Pos, s.Size)
	if s.Rotation != 0 {
		c := r.Center()
		about := geometry.Translation(c.X, c.Y).
			Mul(geometry.Rotation(s.Rotation)).
			Mul(geometry.Translation(-c.X, -c.Y))
		r = about.ApplyToRect(r)
	}
	return s.Xform.ApplyToRect(r)
}

// Clone returns a deep copy. Payloads are copied per kind; the clone shares
// nothing with the original.
func (s *Shape) Clone() *Shape {
	out := *s
	switch s.Kind {
	case KindText:
		if s.Text != nil {
			data := *s.Text
			out.Text = &data
		}
	case KindRectangle:
		if s.Rectangle != nil {
			data := *s.Rectangle
			out.Rectangle = &data
		}
	case KindBackground:
		if s.Background != nil {
			data := *s.Background
			out.Background = &data
		}
	case KindImage:
		if s.Image != nil {
			data := *s.Image
			out.Image = &data
		}
	}
	out.Style = s.Style.clone()
	return &out
}

func (st Style) clone() Style {
	out := st
	if st.Fill != nil {
		fill := *st.Fill
		out.Fill = &fill
	}
	if st.Stroke != nil {
		stroke := *st.Stroke
		out.Stroke = &stroke
	}
	if st.Shadow != nil {
		shadow := *st.Shadow
		out.Shadow = &shadow
	}
	return out
}
