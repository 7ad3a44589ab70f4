// Package scoring turns normalized finding rates into 0-10 scores using
// calibrated curves. Calibration pairs (best, worst) come from a reference
// benchmark corpus; a rate at best maps to 10, at worst to 0.
package scoring

import (
	"fmt"
	"math"
)

// CurveCase selects how a saturating curve behaves at the ends of its
// calibration interval.
type CurveCase int

const (
	// Floating uses the fitted sigmoid across the whole domain; both tails
	// saturate smoothly outside [worst, best].
	Floating CurveCase = iota

	// BestFixed pins the score to exactly 10 once the rate reaches best.
	// Used when the ideal end of a metric is an absolute, tool-independent
	// extreme rather than a benchmark-derived one.
	BestFixed

	// WorstFixed mirrors BestFixed: the score is pinned to 0 at or beyond
	// worst.
	WorstFixed
)

// The saturating curve is a logistic fitted through calibration points at
// 10/25/50/75/90% of the [worst, best] span. By symmetry the midpoint is
// the inflection, and the steepness follows in closed form from the
// 10%/90% pair: 0.9 = 1/(1+e^(-k*0.4)) gives k = ln(9)/0.4.
const logisticSteepness = 5.493061443340549 // ln(9) / 0.4

// Curve is a calibrated scoring curve. The sign of (Best - Worst) encodes
// the metric direction: Best > Worst means higher rates are better.
type Curve struct {
	Best  float64
	Worst float64
	Case  CurveCase
}

// NewCurve validates a calibration pair. Equal best and worst rates leave
// the curve without a defined span and are rejected.
func NewCurve(best, worst float64, c CurveCase) (Curve, error) {
	if best == worst {
		return Curve{}, fmt.Errorf("invalid calibration: best == worst (%v)", best)
	}
	return Curve{Best: best, Worst: worst, Case: c}, nil
}

// MustCurve is NewCurve for compiled-in calibration constants.
func MustCurve(best, worst float64, c CurveCase) Curve {
	curve, err := NewCurve(best, worst, c)
	if err != nil {
		panic(err)
	}
	return curve
}

// progress maps a rate onto the calibration interval: 0 at worst, 1 at
// best, linear in between, unbounded outside.
func (c Curve) progress(rate float64) float64 {
	return (rate - c.Worst) / (c.Best - c.Worst)
}

func logistic(t float64) float64 {
	return 1 / (1 + math.Exp(-logisticSteepness*(t-0.5)))
}

// Linear evaluates the relative linear curve: 0 at worst, 10 at best,
// clamped outside the interval. Clamping discards how far outside the
// interval a rate lies; Evaluate avoids that defect.
func (c Curve) Linear(rate float64) float64 {
	score := 10 * c.progress(rate)
	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}

// Evaluate scores a rate on the saturating-absolute curve. The sigmoid
// yields 1 at worst and 9 at best (by the calibration fit) and saturates
// toward 0 and 10 beyond them. The fixed cases pin the absolute end of the
// interval exactly and ramp linearly over that half, keeping the curve
// continuous at the midpoint where both halves score 5.
func (c Curve) Evaluate(rate float64) float64 {
	t := c.progress(rate)

	switch c.Case {
	case BestFixed:
		if t >= 1 {
			return 10
		}
		if t >= 0.5 {
			return 10 * t
		}
		return 10 * logistic(t)
	case WorstFixed:
		if t <= 0 {
			return 0
		}
		if t < 0.5 {
			return 10 * t
		}
		return 10 * logistic(t)
	default:
		return 10 * logistic(t)
	}
}
