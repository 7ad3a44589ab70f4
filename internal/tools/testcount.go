package tools

import (
	"context"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/scoring"
	"github.com/adrianzap/softwipe/internal/sources"
)

// TestCountTool estimates how much of the program is test code by the share
// of code lines living in test files. It runs no external tool.
type TestCountTool struct {
	Curve scoring.Curve
}

func NewTestCountTool() *TestCountTool {
	return &TestCountTool{Curve: scoring.TestCountCurve}
}

// Name implements domain.AnalysisTool.
func (t *TestCountTool) Name() string { return "Test count" }

// Run implements domain.AnalysisTool.
func (t *TestCountTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	var testFiles []string
	for _, file := range req.SourceFiles {
		if sources.IsTestFile(file) {
			testFiles = append(testFiles, file)
		}
	}

	testLines, err := sources.CountLines(testFiles)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	rate, err := scoring.Rate(testLines, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	score := t.Curve.Evaluate(rate)
	log := rateLine("Test LOC", rate, testLines, req.LinesOfCode) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}
