package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/scoring"
)

// lizardSummary is the parsed tail of a lizard run: the complexity summary
// table plus the -Eduplicate unique rate.
type lizardSummary struct {
	AvgCCN       float64
	WarningCount int
	UniqueRate   float64
}

// LizardTool measures cyclomatic complexity, complexity warnings and code
// duplication in one lizard invocation.
type LizardTool struct {
	Runner          execx.Runner
	CyclomaticCurve scoring.Curve
	WarningCurve    scoring.Curve
	UniqueCurve     scoring.Curve
}

func NewLizardTool(runner execx.Runner) *LizardTool {
	return &LizardTool{
		Runner:          runner,
		CyclomaticCurve: scoring.CyclomaticCurve,
		WarningCurve:    scoring.LizardCurve,
		UniqueCurve:     scoring.UniqueCurve,
	}
}

// Name implements domain.AnalysisTool.
func (t *LizardTool) Name() string { return "Lizard" }

// Run implements domain.AnalysisTool. Lizard exits with status 1 when it
// found complexity warnings, so exit 1 carries valid output.
func (t *LizardTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	args := append([]string{"-Eduplicate", "-l", "cpp"}, req.SourceFiles...)

	res, err := t.Runner.Run(ctx, "", "lizard", args...)
	if err != nil {
		return domain.FailedResult(3), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
	}
	if res.ExitCode != 0 && res.ExitCode != 1 {
		return domain.FailedResult(3), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, nil)
	}

	summary, err := parseLizardOutput(res.Output)
	if err != nil {
		return domain.FailedResult(3), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	warningRate, err := scoring.Rate(summary.WarningCount, req.FunctionCount)
	if err != nil {
		return domain.FailedResult(3), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	path, err := writeArtifact(req, ArtifactLizard, res.Output)
	if err != nil {
		return domain.FailedResult(3), err
	}

	cyclomaticScore := t.CyclomaticCurve.Evaluate(summary.AvgCCN)
	warningScore := t.WarningCurve.Evaluate(warningRate)
	uniqueScore := t.UniqueCurve.Evaluate(summary.UniqueRate)

	log := fmt.Sprintf("Average cyclomatic complexity: %v\n", summary.AvgCCN) +
		scoreLine("Cyclomatic complexity", cyclomaticScore) + "\n" +
		rateLine("Lizard warning", warningRate, summary.WarningCount, req.FunctionCount) + "\n" +
		scoreLine("Lizard warning", warningScore) + "\n" +
		fmt.Sprintf("Unique code rate: %v\n", summary.UniqueRate) +
		scoreLine("Unique (code duplication)", uniqueScore) + "\n" +
		resultsWrittenLine(path) + "\n"

	return domain.ToolResult{
		Scores:  []float64{cyclomaticScore, warningScore, uniqueScore},
		Log:     log,
		Success: true,
	}, nil
}

// parseLizardOutput extracts the summary values from lizard's plain text
// report. The averages live two lines below the "Total nloc" header, and
// -Eduplicate appends the unique rate as the second-to-last line.
func parseLizardOutput(output string) (lizardSummary, error) {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	summaryLine := ""
	for i, line := range lines {
		if strings.HasPrefix(line, "Total nloc") && i+2 < len(lines) {
			summaryLine = lines[i+2]
		}
	}
	if summaryLine == "" {
		return lizardSummary{}, fmt.Errorf("no summary table in lizard output")
	}

	fields := strings.Fields(summaryLine)
	if len(fields) < 6 {
		return lizardSummary{}, fmt.Errorf("malformed lizard summary line %q", summaryLine)
	}
	avgCCN, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return lizardSummary{}, fmt.Errorf("malformed average CCN in %q", summaryLine)
	}
	warningCount, err := strconv.Atoi(fields[5])
	if err != nil {
		return lizardSummary{}, fmt.Errorf("malformed warning count in %q", summaryLine)
	}

	uniqueRate, err := parseUniqueRate(lines)
	if err != nil {
		return lizardSummary{}, err
	}

	return lizardSummary{AvgCCN: avgCCN, WarningCount: warningCount, UniqueRate: uniqueRate}, nil
}

// parseUniqueRate reads the percentage off the unique rate line, the last
// line -Eduplicate prints.
func parseUniqueRate(lines []string) (float64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("no unique rate in lizard output")
	}
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) == 0 {
		return 0, fmt.Errorf("no unique rate in lizard output")
	}
	percentage := strings.TrimSuffix(fields[len(fields)-1], "%")
	value, err := strconv.ParseFloat(percentage, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed unique rate %q", fields[len(fields)-1])
	}
	return value / 100, nil
}
