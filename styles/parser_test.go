package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

func TestParseColorHex(t *testing.T) {
	cases := map[string]geometry.Color{
		"#fff":      {R: 255, G: 255, B: 255, A: 1},
		"#000000":   {R: 0, G: 0, B: 0, A: 1},
		"#3366ff":   {R: 0x33, G: 0x66, B: 0xff, A: 1},
		"#3366ff80": {R: 0x33, G: 0x66, B: 0xff, A: float64(0x80) / 255},
		"#f00c":     {R: 255, G: 0, B: 0, A: float64(0xcc) / 255},
	}
	for input, want := range cases {
		got, err := ParseColor(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseColorFunctions(t *testing.T) {
	got, err := ParseColor("rgb(12, 34, 56)")
	require.NoError(t, err)
	assert.Equal(t, geometry.Color{R: 12, G: 34, B: 56, A: 1}, got)

	got, err = ParseColor("rgba(255, 0, 0, 0.5)")
	require.NoError(t, err)
	assert.Equal(t, geometry.Color{R: 255, G: 0, B: 0, A: 0.5}, got)

	// Out-of-range channels clamp rather than fail.
	got, err = ParseColor("rgb(300, -5, 0)")
	require.NoError(t, err)
	assert.Equal(t, geometry.Color{R: 255, G: 0, B: 0, A: 1}, got)
}

func TestParseColorUnrecognized(t *testing.T) {
	for _, input := range []string{"", "blue-ish", "rgb(1,2)", "#12345", "hsl(1,2,3)"} {
		got, err := ParseColor(input)
		assert.Error(t, err, input)
		// The fallback is always opaque white so a bad payload never leaves
		// a shape without a drawable color.
		assert.Equal(t, geometry.White, got, input)
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]Length{
		"12px":   {Value: 12, Unit: "px"},
		"80%":    {Value: 80, Unit: "%"},
		"10vw":   {Value: 10, Unit: "vw"},
		"5.5vh":  {Value: 5.5, Unit: "vh"},
		"3vmin":  {Value: 3, Unit: "vmin"},
		"3vmax":  {Value: 3, Unit: "vmax"},
		"1.5em":  {Value: 1.5, Unit: "em"},
		"2rem":   {Value: 2, Unit: "rem"},
		"42":     {Value: 42},
		"-4px":   {Value: -4, Unit: "px"},
	}
	for input, want := range cases {
		got, err := ParseLength(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseLengthClamps(t *testing.T) {
	got, err := ParseLength("5vmin min(16) max(48)")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Value)
	assert.Equal(t, "vmin", got.Unit)
	require.NotNil(t, got.Min)
	require.NotNil(t, got.Max)
	assert.Equal(t, 16.0, *got.Min)
	assert.Equal(t, 48.0, *got.Max)

	// Clamps are accepted in either order.
	got, err = ParseLength("50% max(900) min(100)")
	require.NoError(t, err)
	require.NotNil(t, got.Min)
	require.NotNil(t, got.Max)
	assert.Equal(t, 100.0, *got.Min)
	assert.Equal(t, 900.0, *got.Max)
}

func TestParseLengthErrors(t *testing.T) {
	for _, input := range []string{"", "px", "min(3)", "12qux"} {
		_, err := ParseLength(input)
		assert.Error(t, err, input)
	}
}
