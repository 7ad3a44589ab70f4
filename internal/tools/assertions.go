package tools

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/scoring"
	"github.com/adrianzap/softwipe/internal/sources"
)

// AssertionTool counts assertion usage directly in the sources; it is the
// one adapter without a subprocess. It matches C assert() calls, C++
// static_assert(), and any user-supplied custom assertion names, and must
// not count assertions that only appear inside comments.
type AssertionTool struct {
	Curve scoring.Curve
}

// NewAssertionTool builds the adapter with the standard calibration.
func NewAssertionTool() *AssertionTool {
	return &AssertionTool{Curve: scoring.AssertionCurve}
}

// Name implements domain.AnalysisTool.
func (t *AssertionTool) Name() string { return "Assertion" }

// assertPattern builds the match for assert(, static_assert( and the custom
// assertion names, allowing code or whitespace before the call. Go's regexp
// has no negative lookahead, so comment exclusion is handled separately by
// scanFile rather than baked into the pattern.
func assertPattern(customAsserts []string) (*regexp.Regexp, error) {
	names := []string{"static_assert", "assert"}
	for _, custom := range customAsserts {
		names = append(names, regexp.QuoteMeta(custom))
	}
	return regexp.Compile(`(\W|^)(` + strings.Join(names, "|") + `)\s*\(`)
}

// Run implements domain.AnalysisTool.
func (t *AssertionTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	pattern, err := assertPattern(req.CustomAsserts)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	count := 0
	for _, path := range req.SourceFiles {
		if ctx.Err() != nil {
			return domain.FailedResult(1), ctx.Err()
		}
		n, err := t.scanFile(path, pattern)
		if err != nil {
			return domain.FailedResult(1), err
		}
		count += n
	}

	rate, err := scoring.Rate(count, req.LinesOfCode)
	if err != nil {
		return domain.FailedResult(1), domain.NewMalformedInputError(t.Name(), err.Error())
	}

	detail := fmt.Sprintf(
		"Found %d assertions in %d lines of pure code (i.e. excluding blank lines and comment lines).\n"+
			"That's an assertion rate of %v, or %v%%.\n",
		count, req.LinesOfCode, rate, 100*rate)
	path, err := writeArtifact(req, ArtifactAssertionCheck, detail)
	if err != nil {
		return domain.FailedResult(1), err
	}

	score := t.Curve.Evaluate(rate)
	log := rateLine("Assertion", rate, count, req.LinesOfCode) + "\n" +
		resultsWrittenLine(path) + "\n" +
		scoreLine(t.Name(), score) + "\n"

	return domain.ToolResult{Scores: []float64{score}, Log: log, Success: true}, nil
}

// scanFile counts assertion lines, skipping pure comment lines and matches
// that sit behind a // or /* on the same line.
func (t *AssertionTool) scanFile(path string, pattern *regexp.Regexp) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	inBlock := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		isComment, next := sources.LineIsComment(line, inBlock)
		inBlock = next
		if isComment {
			continue
		}
		loc := pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if commentStartsBefore(line, loc[0]) {
			continue
		}
		count++
	}
	return count, scanner.Err()
}

func commentStartsBefore(line string, idx int) bool {
	if i := strings.Index(line, "//"); i >= 0 && i < idx {
		return true
	}
	if i := strings.Index(line, "/*"); i >= 0 && i < idx {
		return true
	}
	return false
}
