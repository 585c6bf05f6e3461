package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func standardBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "desktop", MinWidth: ptr(1025)},
		{Name: "tablet", MinWidth: ptr(769), MaxWidth: ptr(1024)},
		{Name: "mobile", MaxWidth: ptr(768)},
	}
}

func TestBreakpointResolution(t *testing.T) {
	bps := standardBreakpoints()
	cases := map[float64]string{
		1920: "desktop",
		768:  "mobile",
		400:  "mobile",
		1024: "tablet",
		1025: "desktop",
	}
	for width, want := range cases {
		bp := Current(bps, Container{Width: width, Height: 1080})
		require.NotNil(t, bp, "width %g", width)
		assert.Equal(t, want, bp.Name, "width %g", width)
	}
}

func TestBreakpointDeclarationOrderWins(t *testing.T) {
	// Overlapping ranges: the first declared match is current.
	bps := []Breakpoint{
		{Name: "wide", MinWidth: ptr(500)},
		{Name: "also-wide", MinWidth: ptr(400)},
	}
	bp := Current(bps, Container{Width: 600})
	require.NotNil(t, bp)
	assert.Equal(t, "wide", bp.Name)
}

func TestBreakpointNoMatch(t *testing.T) {
	bps := []Breakpoint{{Name: "big", MinWidth: ptr(2000)}}
	assert.Nil(t, Current(bps, Container{Width: 600}))
}

func TestOverrideMerge(t *testing.T) {
	stretch := ModeStretch
	base := Config{Mode: ModeCenter, MaxWidth: ptr(900)}
	merged := Override{Mode: &stretch, MinWidth: ptr(100)}.Merge(base)

	assert.Equal(t, ModeStretch, merged.Mode)
	require.NotNil(t, merged.MinWidth)
	assert.Equal(t, 100.0, *merged.MinWidth)
	// Untouched fields come from the base.
	require.NotNil(t, merged.MaxWidth)
	assert.Equal(t, 900.0, *merged.MaxWidth)
}

func TestEffectiveConfig(t *testing.T) {
	stretch := ModeStretch
	bps := []Breakpoint{
		{Name: "mobile", MaxWidth: ptr(768), Override: Override{Mode: &stretch}},
	}
	base := Config{Mode: ModeCenter}

	assert.Equal(t, ModeStretch, EffectiveConfig(base, bps, Container{Width: 400}).Mode)
	assert.Equal(t, ModeCenter, EffectiveConfig(base, bps, Container{Width: 1920}).Mode)
}
