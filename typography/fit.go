package typography

import (
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
)

// Fits predicts whether content at the given font size stays inside the
// box, using the estimated line count and line height.
func Fits(content string, box geometry.Size, fontSize, lineHeight float64, params SearchParams) bool {
	if fontSize <= 0 {
		return true
	}
	if EstimateCharsPerLine(box.Width, fontSize, params) < 1 {
		return false
	}
	return EstimateHeight(content, box.Width, fontSize, lineHeight, params) <= box.Height
}

// FindOptimalFitSize binary-searches the largest font size that the fit
// predictor accepts, between the config's minimum size and the initial
// candidate. It terminates when the bracket narrows below the configured
// tolerance or the iteration cap is reached. initial is typically the
// output of CalculateFontSize.
func FindOptimalFitSize(cfg layout.TypographyConfig, content string, box geometry.Size, initial float64, params SearchParams) float64 {
	lineHeight := cfg.LineHeight()

	lo := cfg.MinSize
	if lo <= 0 {
		lo = 1
	}
	hi := initial
	if hi < lo {
		hi = lo
	}

	if Fits(content, box, hi, lineHeight, params) {
		return hi
	}
	if !Fits(content, box, lo, lineHeight, params) {
		// Even the floor overflows; the floor is the best legal answer.
		return lo
	}

	for i := 0; i < params.FitIterations && hi-lo > params.FitTolerance; i++ {
		mid := (lo + hi) / 2
		if Fits(content, box, mid, lineHeight, params) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
