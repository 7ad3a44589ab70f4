package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/classify"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/scoring"
)

// cppcheckChunkSize bounds how many files go into one invocation so the
// argument list stays below the platform limit.
const cppcheckChunkSize = 1000

// CppcheckTool runs cppcheck with all checks enabled over the sources.
type CppcheckTool struct {
	Runner   execx.Runner
	Warnings classify.Table
	Curve    scoring.Curve
}

// NewCppcheckTool builds the adapter with the standard classification table
// and calibration.
func NewCppcheckTool(runner execx.Runner) *CppcheckTool {
	return &CppcheckTool{Runner: runner, Warnings: classify.CppcheckWarnings, Curve: scoring.CppcheckCurve}
}

// Name implements domain.AnalysisTool.
func (t *CppcheckTool) Name() string { return "Cppcheck" }

// Run implements domain.AnalysisTool. cppcheck exits zero even when it has
// findings, so any nonzero exit is a crash.
func (t *CppcheckTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	language := "c"
	if req.CPP {
		language = "c++"
	}
	base := []string{"--enable=all", "--force", "--language=" + language, "-v"}

	var output strings.Builder
	for _, chunk := range splitInChunks(req.SourceFiles, cppcheckChunkSize) {
		res, err := t.Runner.Run(ctx, "", "cppcheck", append(append([]string{}, base...), chunk...)...)
		if err != nil {
			return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
		}
		if res.ExitCode != 0 {
			return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, nil)
		}
		output.WriteString(res.Output)
		output.WriteString("\n")
	}

	warningLines := cppcheckWarningLines(output.String())
	records := t.classifyLines(warningLines)
	weighted := classify.WeightedCount(records)

	rate, err := scoring.Rate(weighted, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	path, err := writeArtifact(req, ArtifactCppcheck, strings.Join(warningLines, "\n")+"\n")
	if err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log := t.summarize(records) +
		rateLine("Total weighted Cppcheck warning", rate, weighted, req.LinesOfCode) + "\n" +
		resultsWrittenLine(path) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}

// cppcheckWarningLines keeps the finding lines, which carry a bracketed
// file reference.
func cppcheckWarningLines(output string) []string {
	var warningLines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "[") {
			warningLines = append(warningLines, line)
		}
	}
	return warningLines
}

// classifyLines classifies findings by their parenthesized severity word,
// e.g. "(error)" or "(style)".
func (t *CppcheckTool) classifyLines(warningLines []string) []domain.WarningRecord {
	var records []domain.WarningRecord
	for _, line := range warningLines {
		for _, field := range strings.Fields(line) {
			if strings.HasPrefix(field, "(") && strings.HasSuffix(field, ")") {
				severity := field[1 : len(field)-1]
				records = append(records, t.Warnings.Record("", 0, severity))
				break
			}
		}
	}
	return records
}

// summarize counts findings per severity word for the log.
func (t *CppcheckTool) summarize(records []domain.WarningRecord) string {
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		if counts[r.Category] == 0 {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}
	var sb strings.Builder
	for _, category := range order {
		fmt.Fprintf(&sb, "Cppcheck %s warnings: %d\n", category, counts[category])
	}
	return sb.String()
}

func splitInChunks(items []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
