// Package typography sizes text for a container: scale-curve font sizing
// against a fixed reference resolution, a readability hill-climb, and a
// binary-search fit finder driven by a glyph-width heuristic. It measures
// nothing itself; estimates use average glyph widths, which is all the
// update path can afford between frames.
package typography

import (
	"math"

	"github.com/kelibst/praise-present-v2-sub002/layout"
)

// Reference resolution the scale ratio is computed against.
const (
	ReferenceWidth  = 1920.0
	ReferenceHeight = 1080.0
)

// SearchParams carries the empirically tuned constants of the sizing
// searches. The defaults reproduce the shipped behavior; they are fields
// rather than constants so a host can retune without forking the algorithm.
type SearchParams struct {
	// GlyphWidthRatio estimates the average glyph width as a fraction of
	// the font size.
	GlyphWidthRatio float64
	// Perturbations are the relative font-size nudges the readability
	// hill-climb tries each round.
	Perturbations []float64
	// HillClimbIterations bounds the readability search.
	HillClimbIterations int
	// FitIterations bounds the binary fit search.
	FitIterations int
	// FitTolerance is the convergence threshold in pixels.
	FitTolerance float64
	// LogDamping scales the logarithmic curve's deviation from 1.
	LogDamping float64
}

// DefaultSearchParams returns the tuned defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		GlyphWidthRatio:     0.52,
		Perturbations:       []float64{-0.10, -0.05, 0.05, 0.10},
		HillClimbIterations: 5,
		FitIterations:       20,
		FitTolerance:        1.0,
		LogDamping:          0.6,
	}
}

// ScaleRatio returns the container's size ratio relative to the reference
// resolution, using the more constrained axis.
func ScaleRatio(c layout.Container) float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return math.Min(c.Width/ReferenceWidth, c.Height/ReferenceHeight)
}

// CalculateFontSize resolves the configured base size for the container and
// applies the scale curve, clamped to the config's pixel bounds.
// contentLength, when positive, gently shrinks the result for long content;
// pass 0 to skip that adjustment.
func CalculateFontSize(cfg layout.TypographyConfig, c layout.Container, contentLength int, params SearchParams) float64 {
	base := cfg.BaseSize.Resolve(c, c.Width)
	ratio := ScaleRatio(c)

	var scale float64
	switch cfg.Mode {
	case layout.ScaleLinear:
		scale = ratio
	case layout.ScaleLogarithmic:
		if ratio > 0 {
			scale = 1 + math.Log(ratio)*params.LogDamping
		} else {
			scale = 1
		}
	case layout.ScaleStepped:
		scale = steppedScale(ratio)
	case layout.ScaleFluid:
		minScale, maxScale := cfg.MinScale, cfg.MaxScale
		if minScale <= 0 {
			minScale = 0.5
		}
		if maxScale <= 0 {
			maxScale = 2.0
		}
		scale = math.Min(math.Max(ratio, minScale), maxScale)
	default:
		scale = ratio
	}
	if scale <= 0 {
		scale = 0.1
	}

	size := base * scale
	if contentLength > 100 {
		// Long content reads better a notch smaller; cap the shrink at 20%.
		shrink := 1 - 0.05*math.Floor(float64(contentLength)/100)
		size *= math.Max(shrink, 0.8)
	}
	return clampSize(size, cfg)
}

func steppedScale(ratio float64) float64 {
	switch {
	case ratio < 0.6:
		return 0.5
	case ratio < 0.85:
		return 0.75
	case ratio < 1.2:
		return 1.0
	case ratio < 1.75:
		return 1.5
	default:
		return 2.0
	}
}

func clampSize(size float64, cfg layout.TypographyConfig) float64 {
	if cfg.MinSize > 0 && size < cfg.MinSize {
		size = cfg.MinSize
	}
	if cfg.MaxSize > 0 && size > cfg.MaxSize {
		size = cfg.MaxSize
	}
	return size
}

// EstimateCharsPerLine predicts how many characters of the given font size
// fit into width using the average glyph-width heuristic.
func EstimateCharsPerLine(width, fontSize float64, params SearchParams) int {
	if width <= 0 || fontSize <= 0 {
		return 0
	}
	glyph := fontSize * params.GlyphWidthRatio
	if glyph <= 0 {
		return 0
	}
	return int(width / glyph)
}

// EstimateLines predicts the wrapped line count for content in the given
// width at the given font size. Explicit newlines always break.
func EstimateLines(content string, width, fontSize float64, params SearchParams) int {
	if content == "" {
		return 0
	}
	perLine := EstimateCharsPerLine(width, fontSize, params)
	if perLine < 1 {
		perLine = 1
	}
	lines := 0
	runLen := 0
	for _, r := range content {
		if r == '\n' {
			lines += lineSpan(runLen, perLine)
			runLen = 0
			continue
		}
		runLen++
	}
	lines += lineSpan(runLen, perLine)
	return lines
}

func lineSpan(chars, perLine int) int {
	if chars == 0 {
		return 1 // an empty segment still occupies a line
	}
	return (chars + perLine - 1) / perLine
}

// EstimateHeight predicts the total pixel height of content laid out in the
// given width at the given font size and line-height ratio.
func EstimateHeight(content string, width, fontSize, lineHeight float64, params SearchParams) float64 {
	return float64(EstimateLines(content, width, fontSize, params)) * fontSize * lineHeight
}
