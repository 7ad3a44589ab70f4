package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/classify"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/scoring"
)

const (
	inferBuildDir   = "infer_build"
	inferOutputDir  = "infer-out"
	inferReportName = "bugs.txt"
)

// InferTool drives a full infer run: it rebuilds the program under infer's
// capture, analyzes the captured build, and scores the report.
type InferTool struct {
	Runner   execx.Runner
	Warnings classify.Table
	Curve    scoring.Curve
}

func NewInferTool(runner execx.Runner) *InferTool {
	return &InferTool{Runner: runner, Warnings: classify.InferWarnings, Curve: scoring.InferCurve}
}

// Name implements domain.AnalysisTool.
func (t *InferTool) Name() string { return "Infer" }

// Run implements domain.AnalysisTool.
func (t *InferTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	var workDir string
	var err error
	switch req.BuildSystem {
	case domain.BuildSystemCMake:
		workDir, err = t.captureWithCMake(ctx, req)
	case domain.BuildSystemMake:
		workDir, err = t.captureWithMake(ctx, req)
	default:
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(),
			fmt.Sprintf("no build system to capture with in %s", req.ProgramDir))
	}
	if err != nil {
		return domain.FailedResult(1), err
	}

	res, err := t.Runner.Run(ctx, workDir, "infer", "analyze", "--keep-going")
	if err != nil {
		return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
	}
	if res.ExitCode != 0 {
		return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, nil)
	}

	reportPath := filepath.Join(workDir, inferOutputDir, inferReportName)
	report, err := os.ReadFile(reportPath)
	if err != nil {
		return domain.FailedResult(1), domain.NewMissingArtifactError(t.Name(), reportPath)
	}

	summary, weighted := t.parseReport(string(report))
	rate, err := scoring.Rate(weighted, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	path, err := writeArtifact(req, ArtifactInfer, string(report))
	if err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log := summary +
		rateLine("Weighted Infer warning", rate, weighted, req.LinesOfCode) + "\n" +
		resultsWrittenLine(path) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}

// captureWithCMake configures and captures the build in a dedicated build
// directory so the program's own build tree stays untouched.
func (t *InferTool) captureWithCMake(ctx context.Context, req *domain.AnalysisRequest) (string, error) {
	buildPath := filepath.Join(req.ProgramDir, inferBuildDir)
	if err := os.RemoveAll(buildPath); err != nil {
		return "", fmt.Errorf("clearing infer build directory: %w", err)
	}
	if err := os.MkdirAll(buildPath, 0o755); err != nil {
		return "", fmt.Errorf("creating infer build directory: %w", err)
	}

	res, err := t.Runner.Run(ctx, buildPath, "infer", "compile", "--", "cmake", "..")
	if crashErr := t.captureError(req, res, err); crashErr != nil {
		return "", crashErr
	}

	args := append([]string{"capture"}, t.excludeArgs(req)...)
	args = append(args, "--", "make")
	res, err = t.Runner.Run(ctx, buildPath, "infer", args...)
	if crashErr := t.captureError(req, res, err); crashErr != nil {
		return "", crashErr
	}
	return buildPath, nil
}

// captureWithMake captures an in-tree make build. Not every makefile has a
// clean target, so a failing clean is ignored.
func (t *InferTool) captureWithMake(ctx context.Context, req *domain.AnalysisRequest) (string, error) {
	if _, err := t.Runner.Run(ctx, req.ProgramDir, "make", "clean"); err != nil {
		return "", domain.NewToolCrashError(t.Name(), 0, "", err)
	}

	args := append([]string{"capture"}, t.excludeArgs(req)...)
	args = append(args, "--", "make")
	res, err := t.Runner.Run(ctx, req.ProgramDir, "infer", args...)
	if crashErr := t.captureError(req, res, err); crashErr != nil {
		return "", crashErr
	}
	return req.ProgramDir, nil
}

// captureError turns a failed capture step into a tool crash, preserving
// the build output in an error artifact for diagnosis.
func (t *InferTool) captureError(req *domain.AnalysisRequest, res execx.Result, err error) error {
	if err == nil && res.ExitCode == 0 {
		return nil
	}
	content := fmt.Sprintf("Infer compilation crashed with error code %d!\n%s", res.ExitCode, res.Output)
	if _, writeErr := writeArtifact(req, ArtifactInferBuildError, content); writeErr != nil {
		return writeErr
	}
	return domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
}

// excludeArgs maps the excluded paths to capture flags, relative to the
// program root the way infer expects them.
func (t *InferTool) excludeArgs(req *domain.AnalysisRequest) []string {
	var args []string
	for _, path := range req.ExcludedPaths {
		rel, err := filepath.Rel(req.ProgramDir, path)
		if err != nil {
			rel = path
		}
		args = append(args, "--skip-analysis-in-path", rel)
	}
	return args
}

// parseReport reads the category counts from the "Summary of the reports"
// tail of bugs.txt and weights them by the classification table.
func (t *InferTool) parseReport(report string) (string, int) {
	var summary strings.Builder
	weighted := 0
	recording := false
	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		if recording {
			summary.WriteString(strings.TrimSpace(line) + "\n")
			parts := strings.Split(strings.ReplaceAll(line, " ", ""), ":")
			category := parts[0]
			if category == "" {
				continue
			}
			count, err := strconv.Atoi(parts[len(parts)-1])
			if err != nil {
				continue
			}
			weighted += int(t.Warnings.Classify(category)) * count
		}
		if strings.Contains(line, "Summary of the reports") {
			recording = true
		}
	}
	return summary.String(), weighted
}
