// Package layout resolves flexible, unit-carrying values into pixel
// rectangles for a given container: responsive units, breakpoint selection,
// and layout-mode application. A value is parsed or constructed once and
// converted at render time against the current container, so the same shape
// tree lays out correctly on a small preview and a full-resolution output.
package layout

import (
	"fmt"
	"math"

	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/styles"
)

// Unit represents the unit a flexible value was specified in.
type Unit int

const (
	UnitPx      Unit = iota // absolute pixels
	UnitPercent             // percent of a context size (element/container axis)
	UnitVw                  // percent of container width
	UnitVh                  // percent of container height
	UnitVmin                // percent of the smaller container dimension
	UnitVmax                // percent of the larger container dimension
	UnitRem                 // multiple of the root base font size
	UnitEm                  // multiple of the local font size
)

var unitNames = [...]string{
	UnitPx:      "px",
	UnitPercent: "%",
	UnitVw:      "vw",
	UnitVh:      "vh",
	UnitVmin:    "vmin",
	UnitVmax:    "vmax",
	UnitRem:     "rem",
	UnitEm:      "em",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// Value is a flexible length: a number, its unit, and optional pixel clamps
// applied after unit conversion.
type Value struct {
	Value float64  `json:"value"`
	Unit  Unit     `json:"unit"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Px creates an absolute pixel value.
func Px(v float64) Value { return Value{Value: v, Unit: UnitPx} }

// Percent creates a percent-of-context value.
func Percent(v float64) Value { return Value{Value: v, Unit: UnitPercent} }

// Vw creates a viewport-width-percent value.
func Vw(v float64) Value { return Value{Value: v, Unit: UnitVw} }

// Vh creates a viewport-height-percent value.
func Vh(v float64) Value { return Value{Value: v, Unit: UnitVh} }

// Vmin creates a viewport-min-percent value.
func Vmin(v float64) Value { return Value{Value: v, Unit: UnitVmin} }

// Vmax creates a viewport-max-percent value.
func Vmax(v float64) Value { return Value{Value: v, Unit: UnitVmax} }

// Rem creates a root-em value.
func Rem(v float64) Value { return Value{Value: v, Unit: UnitRem} }

// Em creates a local-em value.
func Em(v float64) Value { return Value{Value: v, Unit: UnitEm} }

// Clamped returns the value with min/max pixel clamps attached.
func (v Value) Clamped(min, max float64) Value {
	v.Min = &min
	v.Max = &max
	return v
}

// IsZero reports whether the value is the zero pixel value with no clamps.
func (v Value) IsZero() bool {
	return v.Value == 0 && v.Unit == UnitPx && v.Min == nil && v.Max == nil
}

func (v Value) String() string {
	s := fmt.Sprintf("%g%s", v.Value, v.Unit)
	if v.Min != nil {
		s += fmt.Sprintf(" min(%g)", *v.Min)
	}
	if v.Max != nil {
		s += fmt.Sprintf(" max(%g)", *v.Max)
	}
	return s
}

// Parse converts a length string such as "80%", "10vw" or "1.5em min(16)"
// into a Value. Bare numbers are absolute pixels.
func Parse(input string) (Value, error) {
	parsed, err := styles.ParseLength(input)
	if err != nil {
		return Value{}, err
	}
	unit, ok := unitFromString(parsed.Unit)
	if !ok {
		return Value{}, fmt.Errorf("unsupported unit %q in %q", parsed.Unit, input)
	}
	return Value{Value: parsed.Value, Unit: unit, Min: parsed.Min, Max: parsed.Max}, nil
}

func unitFromString(s string) (Unit, bool) {
	switch s {
	case "", "px":
		return UnitPx, true
	case "%":
		return UnitPercent, true
	case "vw":
		return UnitVw, true
	case "vh":
		return UnitVh, true
	case "vmin":
		return UnitVmin, true
	case "vmax":
		return UnitVmax, true
	case "rem":
		return UnitRem, true
	case "em":
		return UnitEm, true
	default:
		return 0, false
	}
}

// Resolve converts the value to pixels against the container. context is the
// reference size for percent units (typically the container axis the value
// applies to); pass 0 when no context applies. A percent value without a
// context cannot crash a render pass: it degrades to the raw number with a
// logged warning.
func (v Value) Resolve(c Container, context float64) float64 {
	var px float64
	switch v.Unit {
	case UnitPx:
		px = v.Value
	case UnitPercent:
		if context <= 0 {
			logx.L().Warn("percent value resolved without a context size, using raw value",
				"value", v.Value)
			px = v.Value
		} else {
			px = v.Value / 100 * context
		}
	case UnitVw:
		px = v.Value / 100 * c.Width
	case UnitVh:
		px = v.Value / 100 * c.Height
	case UnitVmin:
		px = v.Value / 100 * math.Min(c.Width, c.Height)
	case UnitVmax:
		px = v.Value / 100 * math.Max(c.Width, c.Height)
	case UnitRem:
		px = v.Value * c.rootFontSize()
	case UnitEm:
		px = v.Value * c.localFontSize()
	default:
		px = v.Value
	}
	if v.Min != nil && px < *v.Min {
		px = *v.Min
	}
	if v.Max != nil && px > *v.Max {
		px = *v.Max
	}
	return px
}
