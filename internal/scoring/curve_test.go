package scoring

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewCurveRejectsEqualEnds(t *testing.T) {
	if _, err := NewCurve(0.5, 0.5, Floating); err == nil {
		t.Fatal("expected error for best == worst")
	}
	if _, err := NewCurve(0.01, 0.5, Floating); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLinearScore(t *testing.T) {
	curve := MustCurve(0.0088, 0.0, WorstFixed)

	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"assertion rate from eight asserts in 1000 lines", 0.008, 9.0909090909},
		{"at best", 0.0088, 10},
		{"at worst", 0.0, 0},
		{"beyond best clamps", 0.02, 10},
		{"below worst clamps", -0.001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.Linear(tt.rate)
			if !almostEqual(got, tt.want) {
				t.Errorf("Linear(%v) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

func TestEvaluateFloating(t *testing.T) {
	// Lower rates are better: best < worst.
	curve := MustCurve(0.001, 0.26, Floating)

	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"at best", 0.001, 9},
		{"at worst", 0.26, 1},
		{"at midpoint", (0.001 + 0.26) / 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.Evaluate(tt.rate)
			if !almostEqual(got, tt.want) {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}

	t.Run("saturates beyond the interval", func(t *testing.T) {
		beyond := curve.Evaluate(-0.1)
		if beyond <= 9 || beyond > 10 {
			t.Errorf("Evaluate beyond best = %v, want in (9, 10]", beyond)
		}
		below := curve.Evaluate(1.0)
		if below >= 1 || below < 0 {
			t.Errorf("Evaluate beyond worst = %v, want in [0, 1)", below)
		}
	})
}

func TestEvaluateBestFixed(t *testing.T) {
	// The unique rate: a value of 1 cannot be improved on, so the best end
	// is pinned to exactly 10.
	curve := MustCurve(0.98, 0.815, BestFixed)

	if got := curve.Evaluate(0.98); got != 10 {
		t.Errorf("Evaluate(best) = %v, want exactly 10", got)
	}
	if got := curve.Evaluate(1.0); got != 10 {
		t.Errorf("Evaluate beyond best = %v, want exactly 10", got)
	}

	// Upper half ramps linearly: t = 0.75 scores 7.5.
	threeQuarters := 0.815 + 0.75*(0.98-0.815)
	if got := curve.Evaluate(threeQuarters); !almostEqual(got, 7.5) {
		t.Errorf("Evaluate(t=0.75) = %v, want 7.5", got)
	}

	// Lower half is the sigmoid, continuous at the midpoint.
	mid := 0.815 + 0.5*(0.98-0.815)
	if got := curve.Evaluate(mid); !almostEqual(got, 5) {
		t.Errorf("Evaluate(midpoint) = %v, want 5", got)
	}
	if got := curve.Evaluate(0.815); !almostEqual(got, 1) {
		t.Errorf("Evaluate(worst) = %v, want 1", got)
	}
}

func TestEvaluateWorstFixed(t *testing.T) {
	// Assertions: a program with no assertions at all scores exactly 0.
	curve := MustCurve(0.0078, 0.0, WorstFixed)

	if got := curve.Evaluate(0); got != 0 {
		t.Errorf("Evaluate(worst) = %v, want exactly 0", got)
	}
	if got := curve.Evaluate(-0.5); got != 0 {
		t.Errorf("Evaluate beyond worst = %v, want exactly 0", got)
	}
	if got := curve.Evaluate(0.0078 / 4); !almostEqual(got, 2.5) {
		t.Errorf("Evaluate(t=0.25) = %v, want 2.5", got)
	}
	if got := curve.Evaluate(0.0078); !almostEqual(got, 9) {
		t.Errorf("Evaluate(best) = %v, want 9", got)
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	curve := MustCurve(0.028, 0.5, Floating)

	// Better (lower) rates must never score worse.
	prev := math.Inf(-1)
	for rate := 0.6; rate >= -0.1; rate -= 0.01 {
		score := curve.Evaluate(rate)
		if score+epsilon < prev {
			t.Fatalf("score decreased from %v to %v at rate %v", prev, score, rate)
		}
		prev = score
	}
}
