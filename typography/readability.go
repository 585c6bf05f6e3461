package typography

import (
	"math"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
)

// Reference bands the readability score rewards. Sizes are pixels at the
// reference resolution.
const (
	readableFontMin = 16.0
	readableFontMax = 48.0
	lineHeightMin   = 1.2
	lineHeightMax   = 1.6
	charsPerLineMin = 45.0
	charsPerLineMax = 75.0
	utilizationMin  = 0.3
	utilizationMax  = 0.9
)

// Penalty weights per unit of distance outside a band.
const (
	fontPenalty         = 1.5
	lineHeightPenalty   = 40.0
	charsPerLinePenalty = 0.6
	utilizationPenalty  = 60.0
)

// ReadabilityScore rates a candidate font size for content in a box.
// Higher is better; 100 is the unpenalized maximum. The score is a weighted
// sum of band distances for font size, line-height ratio, characters per
// line and area utilization.
func ReadabilityScore(content string, box geometry.Size, fontSize, lineHeight float64, params SearchParams) float64 {
	score := 100.0
	score -= bandDistance(fontSize, readableFontMin, readableFontMax) * fontPenalty
	score -= bandDistance(lineHeight, lineHeightMin, lineHeightMax) * lineHeightPenalty

	perLine := float64(EstimateCharsPerLine(box.Width, fontSize, params))
	score -= bandDistance(perLine, charsPerLineMin, charsPerLineMax) * charsPerLinePenalty

	if box.Area() > 0 {
		textHeight := EstimateHeight(content, box.Width, fontSize, lineHeight, params)
		utilization := math.Min(textHeight*box.Width, box.Area()) / box.Area()
		score -= bandDistance(utilization, utilizationMin, utilizationMax) * utilizationPenalty
	}
	return score
}

func bandDistance(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

// OptimizeForReadability perturbs the starting font size by the configured
// relative nudges for a bounded number of rounds, keeping the best-scoring
// candidate. This is a local hill-climb around the computed size, not a
// global optimum: it deliberately trades exhaustiveness for a fixed, small
// cost on the update path.
func OptimizeForReadability(cfg layout.TypographyConfig, content string, box geometry.Size, startSize float64, params SearchParams) float64 {
	lineHeight := cfg.LineHeight()
	best := startSize
	bestScore := ReadabilityScore(content, box, best, lineHeight, params)

	for i := 0; i < params.HillClimbIterations; i++ {
		improved := false
		for _, nudge := range params.Perturbations {
			candidate := clampSize(best*(1+nudge), cfg)
			if candidate == best {
				continue
			}
			score := ReadabilityScore(content, box, candidate, lineHeight, params)
			if score > bestScore {
				best, bestScore = candidate, score
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return best
}
