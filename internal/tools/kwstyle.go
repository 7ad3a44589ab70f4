package tools

import (
	"context"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/scoring"
)

// KWStyleTool checks the sources against the bundled KWStyle rule set.
// KWStyle only handles a single input file per invocation, so it is run
// once per source file.
type KWStyleTool struct {
	Runner   execx.Runner
	RulesXML string
	Curve    scoring.Curve
}

func NewKWStyleTool(runner execx.Runner, rulesXML string) *KWStyleTool {
	return &KWStyleTool{Runner: runner, RulesXML: rulesXML, Curve: scoring.KWStyleCurve}
}

// Name implements domain.AnalysisTool.
func (t *KWStyleTool) Name() string { return "KWStyle" }

// Run implements domain.AnalysisTool. KWStyle exits with status 1 whenever
// it reports anything, so exit 1 carries valid output.
func (t *KWStyleTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	var output strings.Builder
	for _, sourceFile := range req.SourceFiles {
		res, err := t.Runner.Run(ctx, "", "KWStyle", "-v", "-xml", t.RulesXML, sourceFile)
		if err != nil {
			return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, err)
		}
		if res.ExitCode != 0 && res.ExitCode != 1 {
			return domain.FailedResult(1), domain.NewToolCrashError(t.Name(), res.ExitCode, res.Output, nil)
		}
		output.WriteString(res.Output)
	}

	warningCount := countKWStyleWarnings(output.String())
	rate, err := scoring.Rate(warningCount, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	path, err := writeArtifact(req, ArtifactKWStyle, output.String())
	if err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log := rateLine("KWStyle warning", rate, warningCount, req.LinesOfCode) + "\n" +
		resultsWrittenLine(path) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}

func countKWStyleWarnings(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "Error") {
			count++
		}
	}
	return count
}
