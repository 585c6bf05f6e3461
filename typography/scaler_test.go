package typography

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
)

var params = DefaultSearchParams()

func baseConfig(mode layout.ScaleMode) layout.TypographyConfig {
	return layout.TypographyConfig{
		BaseSize: layout.Px(32),
		Mode:     mode,
		MinSize:  8,
		MaxSize:  200,
	}
}

func TestScaleRatio(t *testing.T) {
	assert.InDelta(t, 1.0, ScaleRatio(layout.Container{Width: 1920, Height: 1080}), 1e-9)
	assert.InDelta(t, 0.5, ScaleRatio(layout.Container{Width: 960, Height: 540}), 1e-9)
	// The constrained axis wins on mismatched aspect ratios.
	assert.InDelta(t, 0.5, ScaleRatio(layout.Container{Width: 1920, Height: 540}), 1e-9)
	assert.InDelta(t, 1.0, ScaleRatio(layout.Container{}), 1e-9)
}

func TestCalculateFontSizeLinear(t *testing.T) {
	full := layout.Container{Width: 1920, Height: 1080}
	half := layout.Container{Width: 960, Height: 540}

	assert.InDelta(t, 32.0, CalculateFontSize(baseConfig(layout.ScaleLinear), full, 0, params), 1e-9)
	assert.InDelta(t, 16.0, CalculateFontSize(baseConfig(layout.ScaleLinear), half, 0, params), 1e-9)
}

func TestCalculateFontSizeLogarithmicDampens(t *testing.T) {
	double := layout.Container{Width: 3840, Height: 2160}
	linear := CalculateFontSize(baseConfig(layout.ScaleLinear), double, 0, params)
	damped := CalculateFontSize(baseConfig(layout.ScaleLogarithmic), double, 0, params)

	assert.Greater(t, damped, 32.0, "a larger container still grows the font")
	assert.Less(t, damped, linear, "the log curve grows slower than linear")
}

func TestCalculateFontSizeStepped(t *testing.T) {
	cases := map[float64]float64{ // container width (16:9) -> expected scale
		960:  0.5,  // ratio 0.5
		1536: 0.75, // ratio 0.8
		1920: 1.0,
		2880: 1.5, // ratio 1.5
		3840: 2.0,
	}
	for width, scale := range cases {
		c := layout.Container{Width: width, Height: width * 9 / 16}
		got := CalculateFontSize(baseConfig(layout.ScaleStepped), c, 0, params)
		assert.InDelta(t, 32*scale, got, 1e-6, "width %g", width)
	}
}

func TestCalculateFontSizeFluidClamps(t *testing.T) {
	cfg := baseConfig(layout.ScaleFluid)
	cfg.MinScale = 0.75
	cfg.MaxScale = 1.25

	tiny := layout.Container{Width: 480, Height: 270}
	huge := layout.Container{Width: 7680, Height: 4320}
	assert.InDelta(t, 32*0.75, CalculateFontSize(cfg, tiny, 0, params), 1e-9)
	assert.InDelta(t, 32*1.25, CalculateFontSize(cfg, huge, 0, params), 1e-9)
}

func TestCalculateFontSizePixelClamps(t *testing.T) {
	cfg := baseConfig(layout.ScaleLinear)
	cfg.MinSize = 20
	c := layout.Container{Width: 480, Height: 270}
	assert.InDelta(t, 20.0, CalculateFontSize(cfg, c, 0, params), 1e-9)
}

func TestLongContentShrinks(t *testing.T) {
	full := layout.Container{Width: 1920, Height: 1080}
	short := CalculateFontSize(baseConfig(layout.ScaleLinear), full, 50, params)
	long := CalculateFontSize(baseConfig(layout.ScaleLinear), full, 350, params)
	assert.Less(t, long, short)
	// The shrink is capped at 20%.
	extreme := CalculateFontSize(baseConfig(layout.ScaleLinear), full, 5000, params)
	assert.InDelta(t, 32*0.8, extreme, 1e-9)
}

func TestEstimateLines(t *testing.T) {
	// 100px wide at size 10 with ratio 0.52 -> 19 chars per line.
	assert.Equal(t, 0, EstimateLines("", 100, 10, params))
	assert.Equal(t, 1, EstimateLines("hello", 100, 10, params))
	assert.Equal(t, 2, EstimateLines("hello\nworld", 100, 10, params))
	// 40 chars at 19 per line wrap to 3.
	assert.Equal(t, 3, EstimateLines(stringOfLen(40), 100, 10, params))
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestFindOptimalFitSize(t *testing.T) {
	cfg := layout.TypographyConfig{BaseSize: layout.Px(64), MinSize: 8, LineHeightRatio: 1.2}
	box := geometry.Sz(400, 120)
	content := stringOfLen(200)

	got := FindOptimalFitSize(cfg, content, box, 64, params)
	assert.True(t, Fits(content, box, got, 1.2, params), "result must fit")
	assert.Less(t, got, 64.0, "long content cannot keep the initial size")
	assert.False(t, Fits(content, box, got+2*params.FitTolerance, 1.2, params),
		"result should sit near the largest fitting size")

	// Content that already fits keeps the initial candidate.
	assert.InDelta(t, 64.0, FindOptimalFitSize(cfg, "hi", box, 64, params), 1e-9)
}

func TestOptimizeForReadabilityImproves(t *testing.T) {
	cfg := layout.TypographyConfig{BaseSize: layout.Px(100), MinSize: 8, MaxSize: 300}
	box := geometry.Sz(800, 400)
	content := stringOfLen(120)

	start := 100.0
	best := OptimizeForReadability(cfg, content, box, start, params)
	lh := cfg.LineHeight()
	assert.GreaterOrEqual(t,
		ReadabilityScore(content, box, best, lh, params),
		ReadabilityScore(content, box, start, lh, params),
		"the hill-climb never returns a worse candidate")
}
