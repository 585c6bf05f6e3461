// Package wire maps shapes to flat serialized records for cross-process
// transport. Encoding is a value copy: the receiving side reconstructs
// shapes from the records and shares no state with the sender. Fields
// outside the declared record set (notably the extra transform) are not
// carried; that boundary is deliberate.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/styles"
)

// Color is the normalized wire color: 0-255 channels plus [0,1] alpha.
// It decodes from any of the accepted representations (component record,
// hex string, rgb()/rgba() string) and always encodes as the record form,
// so one round trip normalizes and further trips are stable.
type Color struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}

// FromColor converts an engine color to its wire record.
func FromColor(c geometry.Color) Color {
	c = c.Clamp()
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ToColor converts the wire record back to an engine color.
func (c Color) ToColor() geometry.Color {
	return geometry.RGBA(c.R, c.G, c.B, c.A).Clamp()
}

func (c Color) MarshalJSON() ([]byte, error) {
	type record Color
	return json.Marshal(record(c))
}

// UnmarshalJSON never fails: malformed payloads decode to opaque white
// with a logged diagnostic so a bad color cannot take down a slide.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := styles.ParseColor(s)
		if err != nil {
			logx.L().Warn("unrecognized color, using white", "value", s, "err", err)
		}
		*c = FromColor(parsed)
		return nil
	}

	// Alpha defaults to opaque when the record leaves it out.
	var rec struct {
		R int      `json:"r"`
		G int      `json:"g"`
		B int      `json:"b"`
		A *float64 `json:"a"`
	}
	if err := json.Unmarshal(data, &rec); err == nil {
		a := 1.0
		if rec.A != nil {
			a = *rec.A
		}
		*c = FromColor(geometry.RGBA(rec.R, rec.G, rec.B, a))
		return nil
	}

	logx.L().Warn("unrecognized color payload, using white", "value", string(data))
	*c = FromColor(geometry.White)
	return nil
}

// String formats the record for diagnostics.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}
