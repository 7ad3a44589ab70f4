package tools

import (
	"context"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/classify"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/scoring"
)

const (
	clangTidyChecksC = "-*,bugprone-*,clang-analyzer-*,misc-*,modernize-*,mpi-*,performance-*,readability-*," +
		"-readability-non-const-parameter,-clang-analyzer-cp*,-clang-analyzer-unix.MismatchedDeallocator"
	clangTidyChecksCPP = clangTidyChecksC + ",boost-*,cppcoreguidelines-*"

	// clang-tidy occasionally segfaults for reasons unrelated to the
	// analyzed code; the runner reports that as the negated signal number.
	sigsegvExitCode = -11

	// DefaultClangTidyRetries bounds how often a segfaulted clang-tidy is
	// re-invoked before the tool surfaces failure.
	DefaultClangTidyRetries = 5
)

// ClangTidyTool runs clang-tidy over all sources against the compilation
// database of the program directory.
type ClangTidyTool struct {
	Runner   execx.Runner
	Warnings classify.Table
	Curve    scoring.Curve
	Retries  int
}

// NewClangTidyTool builds the adapter with the standard classification
// table, calibration, and retry budget.
func NewClangTidyTool(runner execx.Runner) *ClangTidyTool {
	return &ClangTidyTool{
		Runner:   runner,
		Warnings: classify.ClangTidyWarnings,
		Curve:    scoring.ClangTidyCurve,
		Retries:  DefaultClangTidyRetries,
	}
}

// Name implements domain.AnalysisTool.
func (t *ClangTidyTool) Name() string { return "Clang-tidy" }

// Run implements domain.AnalysisTool. clang-tidy exits 1 when no
// compilation database exists, which still produces usable output, so any
// exit other than a segfault is parsed normally.
func (t *ClangTidyTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	checks := clangTidyChecksC
	if req.CPP {
		checks = clangTidyChecksCPP
	}
	args := append([]string{}, req.SourceFiles...)
	args = append(args, "-checks="+checks, "-p", req.ProgramDir)

	res, err := t.runWithRetry(ctx, args)
	if err != nil {
		return domain.FailedResult(1), err
	}

	warningLines := clangTidyWarningLines(res.Output)
	if len(warningLines) == 0 && strings.TrimSpace(res.Output) != "" {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(),
			"output has no \"warnings generated\" marker")
	}

	weighted := classify.WeightedCount(t.classifyLines(warningLines))
	rate, err := scoring.Rate(weighted, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	path, err := writeArtifact(req, ArtifactClangTidy, strings.Join(stripMarkers(warningLines), "\n")+"\n")
	if err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log := rateLine("Weighted Clang-tidy warning", rate, weighted, req.LinesOfCode) + "\n" +
		resultsWrittenLine(path) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}

// runWithRetry re-invokes clang-tidy with one try fewer each time it dies
// with SIGSEGV, until the budget drops below zero.
func (t *ClangTidyTool) runWithRetry(ctx context.Context, args []string) (execx.Result, error) {
	tries := t.Retries
	for {
		res, err := t.Runner.Run(ctx, "", "clang-tidy", args...)
		if err != nil {
			return res, domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
		}
		if res.ExitCode != sigsegvExitCode {
			return res, nil
		}
		if tries < 0 {
			return res, domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, nil)
		}
		tries--
	}
}

// clangTidyWarningLines extracts the warning window of the output: it opens
// at the "N warnings generated." header and closes at the "Suppressed M
// warnings." trailer.
func clangTidyWarningLines(output string) []string {
	var warningLines []string
	recording := false
	for _, line := range strings.Split(output, "\n") {
		if isClangTidyHeader(line) {
			recording = true
		}
		if recording {
			warningLines = append(warningLines, line)
		}
		if isClangTidyTrailer(line) {
			recording = false
		}
	}
	return warningLines
}

func isClangTidyHeader(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), "generated.")
}

func isClangTidyTrailer(line string) bool {
	return strings.HasPrefix(line, "Suppressed")
}

// classifyLines classifies each diagnostic line by the category prefix of
// its check name, the text before the first dash in "[bugprone-foo]".
func (t *ClangTidyTool) classifyLines(warningLines []string) []domain.WarningRecord {
	var records []domain.WarningRecord
	for _, line := range warningLines {
		if !warningLineRe.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		last := fields[len(fields)-1]
		if !strings.HasPrefix(last, "[") || !strings.HasSuffix(last, "]") {
			continue
		}
		name := last[1 : len(last)-1]
		category := strings.SplitN(name, "-", 2)[0]
		records = append(records, t.Warnings.Record(fileOf(line), 0, category))
	}
	return records
}

// stripMarkers drops the header and trailer lines from the artifact.
func stripMarkers(warningLines []string) []string {
	var out []string
	for _, line := range warningLines {
		if isClangTidyHeader(line) || isClangTidyTrailer(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
