package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// CoordinateSystem names the space slide coordinates are expressed in.
// Records carry presentation-space pixels relative to the reference frame;
// viewports rescale on their side.
const CoordinateSystem = "presentation"

// Metadata travels with every slide message.
type Metadata struct {
	CoordinateSystem string `json:"coordinateSystem"`
	Timestamp        int64  `json:"timestamp"` // unix milliseconds
	ShapeCount       int    `json:"shapeCount"`
}

// SerializedSlide is the one-message-per-update envelope. The background
// layer, when present, is split out so receivers can paint it before the
// shape list arrives at the compositor.
type SerializedSlide struct {
	ID         string            `json:"id"`
	Shapes     []SerializedShape `json:"shapes"`
	Background *SerializedShape  `json:"background,omitempty"`
	Metadata   Metadata          `json:"metadata"`
}

// SerializeSlide captures a shape list into a slide message. The
// lowest-z background shape becomes the envelope's background; everything
// else serializes in the given order.
func SerializeSlide(id string, shapes []*shape.Shape) SerializedSlide {
	slide := SerializedSlide{ID: id}
	for _, s := range shapes {
		rec := Serialize(s)
		if s.Kind == shape.KindBackground &&
			(slide.Background == nil || rec.ZIndex < slide.Background.ZIndex) {
			if slide.Background != nil {
				slide.Shapes = append(slide.Shapes, *slide.Background)
			}
			slide.Background = &rec
			continue
		}
		slide.Shapes = append(slide.Shapes, rec)
	}
	slide.Metadata = Metadata{
		CoordinateSystem: CoordinateSystem,
		Timestamp:        time.Now().UnixMilli(),
		ShapeCount:       len(shapes),
	}
	return slide
}

// DeserializeSlide reconstructs the shape list, background first.
func DeserializeSlide(slide SerializedSlide) []*shape.Shape {
	out := make([]*shape.Shape, 0, len(slide.Shapes)+1)
	if slide.Background != nil {
		out = append(out, Deserialize(*slide.Background))
	}
	for _, rec := range slide.Shapes {
		out = append(out, Deserialize(rec))
	}
	return out
}

// Marshal encodes a slide message for transport.
func Marshal(slide SerializedSlide) ([]byte, error) {
	data, err := json.Marshal(slide)
	if err != nil {
		return nil, fmt.Errorf("marshal slide %q: %w", slide.ID, err)
	}
	return data, nil
}

// Unmarshal decodes a slide message. Unknown extra fields are ignored for
// forward compatibility; malformed colors inside decode to opaque white.
func Unmarshal(data []byte) (SerializedSlide, error) {
	var slide SerializedSlide
	if err := json.Unmarshal(data, &slide); err != nil {
		return SerializedSlide{}, fmt.Errorf("unmarshal slide: %w", err)
	}
	return slide, nil
}
