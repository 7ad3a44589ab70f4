package tools

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/classify"
	"github.com/adrianzap/softwipe/internal/scoring"
)

// warningLineRe matches clang diagnostic lines, e.g.
// "badcode.cpp:42:15: warning: ... [-Wconversion]".
var warningLineRe = regexp.MustCompile(`.+\.(c|cc|cpp|cxx|h|hpp):[0-9]+:[0-9]+:.*`)

// ubsanLineRe matches UndefinedBehaviorSanitizer runtime error lines.
var ubsanLineRe = regexp.MustCompile(`.+\.(c|cc|cpp|cxx|h|hpp):[0-9]+:[0-9]+: runtime error:.+`)

// CompilerTool scores the diagnostics of the external build phase together
// with the sanitizer errors of the external execution phase. It runs no
// subprocess itself: compilation and execution are collaborators that leave
// their logs behind, and the adapter classifies what they found. When no
// build log exists the tool is excluded before dispatch (see Registry).
type CompilerTool struct {
	Warnings classify.Table
	Curve    scoring.Curve
}

// NewCompilerTool builds the adapter with the standard classification table
// and calibration.
func NewCompilerTool() *CompilerTool {
	return &CompilerTool{Warnings: classify.CompilerWarnings, Curve: scoring.CompilerCurve}
}

// Name implements domain.AnalysisTool.
func (t *CompilerTool) Name() string { return "Compiler" }

// Run implements domain.AnalysisTool.
func (t *CompilerTool) Run(_ context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	buildLog, err := os.ReadFile(req.CompilerLogPath)
	if err != nil {
		return domain.FailedResult(1), domain.NewMissingArtifactError(t.Name(), req.CompilerLogPath)
	}

	records := t.classifyWarnings(string(buildLog))
	weighted := classify.WeightedCount(records)

	var log strings.Builder
	sanitizerWeight, sanitizerLog, err := t.countSanitizerErrors(req)
	if err != nil {
		return domain.FailedResult(1), err
	}
	weighted += sanitizerWeight

	rate, err := scoring.Rate(weighted, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	if err := t.writeArtifacts(req, records); err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log.WriteString(rateLine("Weighted compiler warning", rate, weighted, req.LinesOfCode) + "\n")
	log.WriteString(sanitizerLog)
	log.WriteString(scoreLine(t.Name(), score) + "\n")

	return domain.ToolResult{Scores: []float64{score}, Log: log.String(), Success: true}, nil
}

// classifyWarnings extracts the [-Wfoo] flags from diagnostic lines and
// classifies them. Notes and code-context lines carry no trailing bracketed
// flag and are ignored.
func (t *CompilerTool) classifyWarnings(output string) []domain.WarningRecord {
	var records []domain.WarningRecord
	for _, line := range strings.Split(output, "\n") {
		if !warningLineRe.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		last := fields[len(fields)-1]
		if !strings.HasPrefix(last, "[") || !strings.HasSuffix(last, "]") {
			continue
		}
		flag := last[1 : len(last)-1]
		records = append(records, t.Warnings.Record(fileOf(line), 0, flag))
	}
	return records
}

func fileOf(warningLine string) string {
	if i := strings.Index(warningLine, ":"); i > 0 {
		return warningLine[:i]
	}
	return ""
}

// countSanitizerErrors counts AddressSanitizer and UndefinedBehaviorSanitizer
// findings in the execution log. Sanitizer errors are runtime faults and
// always weigh 3. A missing log just means execution was skipped.
func (t *CompilerTool) countSanitizerErrors(req *domain.AnalysisRequest) (int, string, error) {
	if req.SanitizerLogPath == "" {
		return 0, "", nil
	}
	raw, err := os.ReadFile(req.SanitizerLogPath)
	if err != nil {
		return 0, "", domain.NewMissingArtifactError(t.Name(), req.SanitizerLogPath)
	}

	asan, ubsan := 0, 0
	var errorLines []string
	for _, line := range strings.Split(string(raw), "\n") {
		switch {
		case strings.HasPrefix(line, "==") && strings.Contains(line, "ERROR"):
			asan++
			errorLines = append(errorLines, line)
		case ubsanLineRe.MatchString(line):
			ubsan++
			errorLines = append(errorLines, line)
		}
	}

	if _, err := writeArtifact(req, ArtifactSanitizers, strings.Join(errorLines, "\n")+"\n"); err != nil {
		return 0, "", err
	}

	asanRate, err := scoring.Rate(asan, req.LinesOfCode)
	if err != nil {
		return 0, "", domain.NewMalformedInputError(t.Name(), err.Error())
	}
	ubsanRate, _ := scoring.Rate(ubsan, req.LinesOfCode)

	log := rateLine("AddressSanitizer error", asanRate, asan, req.LinesOfCode) + "\n" +
		rateLine("UndefinedBehaviorSanitizer error", ubsanRate, ubsan, req.LinesOfCode) + "\n"

	return 3*asan + 3*ubsan, log, nil
}

// writeArtifacts buckets the classified warnings into the three severity
// artifacts.
func (t *CompilerTool) writeArtifacts(req *domain.AnalysisRequest, records []domain.WarningRecord) error {
	buckets := map[int][]string{}
	for _, r := range records {
		buckets[r.Severity] = append(buckets[r.Severity], fmt.Sprintf("%s: [%s]", r.File, r.Category))
	}
	for severity, name := range map[int]string{
		3: ArtifactCompilerMustFix,
		2: ArtifactCompilerShouldFix,
		1: ArtifactCompilerCouldFix,
	} {
		if _, err := writeArtifact(req, name, strings.Join(buckets[severity], "\n")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
