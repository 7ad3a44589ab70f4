package service

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/adrianzap/softwipe/domain"
)

func TestCompositeIgnoresExcludedTools(t *testing.T) {
	outcomes := []ToolOutcome{
		{ToolName: "Alpha", Result: domain.ToolResult{Scores: []float64{10}, Success: true}},
		{ToolName: "Beta", Result: domain.ToolResult{Scores: []float64{0}, Success: true}},
		{ToolName: "Gamma", Result: domain.FailedResult(1), Err: errors.New("crashed"), Excluded: true},
	}

	got, err := Composite(outcomes)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	// mean(10, 0), not mean(10, 0, 0): the excluded tool's zeroed slots
	// must not drag the score down.
	if got != 5.0 {
		t.Errorf("Composite() = %v, want 5.0", got)
	}
}

func TestCompositeFlattensMultiScoreTools(t *testing.T) {
	outcomes := []ToolOutcome{
		{ToolName: "Lizard", Result: domain.ToolResult{Scores: []float64{8, 6, 10}, Success: true}},
		{ToolName: "Cppcheck", Result: domain.ToolResult{Scores: []float64{4}, Success: true}},
	}

	got, err := Composite(outcomes)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	if math.Abs(got-7.0) > 1e-9 {
		t.Errorf("Composite() = %v, want 7.0", got)
	}
}

func TestCompositeNoSurvivingScores(t *testing.T) {
	cases := []struct {
		name     string
		outcomes []ToolOutcome
	}{
		{"empty", nil},
		{"all excluded", []ToolOutcome{
			{ToolName: "Alpha", Result: domain.FailedResult(1), Excluded: true},
			{ToolName: "Beta", Result: domain.FailedResult(3), Excluded: true},
		}},
		{"unsuccessful result", []ToolOutcome{
			{ToolName: "Alpha", Result: domain.FailedResult(1)},
		}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Composite(tt.outcomes)
			if !errors.Is(err, domain.ErrNoScore) {
				t.Errorf("Composite() error = %v, want ErrNoScore", err)
			}
		})
	}
}

func TestReport(t *testing.T) {
	outcomes := []ToolOutcome{
		{ToolName: "Cppcheck", Result: domain.ToolResult{Scores: []float64{10}, Log: "Cppcheck Score: 10.0/10", Success: true}},
		{ToolName: "Lizard", Result: domain.ToolResult{Scores: []float64{0}, Log: "Lizard Score: 0.0/10", Success: true}},
		{ToolName: "Infer", Result: domain.FailedResult(1), Err: errors.New("infer not found"), Excluded: true},
	}

	got := Report(outcomes)

	for _, want := range []string{
		" --- Running: CPPCHECK --- \n",
		" --- Running: LIZARD --- \n",
		" --- Running: INFER --- \n",
		"Cppcheck Score: 10.0/10",
		"Infer excluded: infer not found\n",
		"Overall program Score: 5.0/10\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Report() missing %q in:\n%s", want, got)
		}
	}

	if n := strings.Count(got, "excluded:"); n != 1 {
		t.Errorf("Report() prints %d exclusion lines, want 1", n)
	}
}

func TestReportWithoutAnyScore(t *testing.T) {
	outcomes := []ToolOutcome{
		{ToolName: "Cppcheck", Result: domain.FailedResult(1), Err: errors.New("crashed"), Excluded: true},
	}

	got := Report(outcomes)
	if !strings.Contains(got, "No score available: every tool was excluded.\n") {
		t.Errorf("Report() = %q, want no-score message", got)
	}
	if strings.Contains(got, "Overall program Score") {
		t.Errorf("Report() fabricated an overall score:\n%s", got)
	}
}
