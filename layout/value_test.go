package layout

import (
	"math"
	"testing"
)

// TestResolveUnits covers pixel conversion for every unit against a fixed
// container (allowing tiny float error).
func TestResolveUnits(t *testing.T) {
	c := Container{Width: 1920, Height: 1080, BaseFontSize: 16, FontSize: 20}
	cases := []struct {
		v       Value
		context float64
		want    float64
	}{
		{Px(42), 0, 42},
		{Percent(50), 1920, 960},
		{Percent(10), 500, 50},
		{Vw(10), 0, 192},
		{Vh(10), 0, 108},
		{Vmin(10), 0, 108},
		{Vmax(10), 0, 192},
		{Rem(2), 0, 32},
		{Em(2), 0, 40},
	}
	for _, tc := range cases {
		got := tc.v.Resolve(c, tc.context)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%v resolved to %g, want %g", tc.v, got, tc.want)
		}
	}
}

// TestResolvePercentProperty checks resolve(v, ctx, C) == v/100*C over a
// spread of values.
func TestResolvePercentProperty(t *testing.T) {
	c := Container{Width: 800, Height: 600}
	for _, context := range []float64{1, 256, 800, 1920.5} {
		for _, value := range []float64{0, 12.5, 50, 100, 150} {
			got := Percent(value).Resolve(c, context)
			want := value / 100 * context
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("percent %g of %g: got %g want %g", value, context, got, want)
			}
		}
	}
}

// TestResolvePercentWithoutContext verifies the degrade-don't-crash rule:
// a missing context falls back to the raw number.
func TestResolvePercentWithoutContext(t *testing.T) {
	c := Container{Width: 1920, Height: 1080}
	if got := Percent(75).Resolve(c, 0); got != 75 {
		t.Fatalf("percent without context should degrade to raw value, got %g", got)
	}
}

func TestResolveClamps(t *testing.T) {
	c := Container{Width: 1920, Height: 1080}
	v := Vw(1).Clamped(32, 64) // 19.2px before clamping
	if got := v.Resolve(c, 0); got != 32 {
		t.Fatalf("min clamp not applied: %g", got)
	}
	v = Vw(10).Clamped(32, 64) // 192px before clamping
	if got := v.Resolve(c, 0); got != 64 {
		t.Fatalf("max clamp not applied: %g", got)
	}
}

func TestParseValue(t *testing.T) {
	v, err := Parse("80%")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.Unit != UnitPercent || v.Value != 80 {
		t.Fatalf("unexpected parse result: %+v", v)
	}

	v, err = Parse("1.5em min(16) max(48)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.Unit != UnitEm || v.Min == nil || *v.Min != 16 || v.Max == nil || *v.Max != 48 {
		t.Fatalf("unexpected parse result: %+v", v)
	}

	if _, err := Parse("12parsecs"); err == nil {
		t.Fatalf("expected an error for an unknown unit")
	}
}
