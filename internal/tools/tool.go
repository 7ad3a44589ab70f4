// Package tools implements the adapters around the external analysis tools.
// Every adapter satisfies domain.AnalysisTool: it builds the tool's argument
// list from the shared request, interprets the exit code, extracts and
// classifies the warning lines, normalizes them to a rate, scores the rate,
// and writes its findings to a result artifact.
package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrianzap/softwipe/domain"
)

// Result artifact names, one per tool.
const (
	ArtifactCompilerMustFix   = "softwipe_compilation_warnings_must_be_fixed.txt"
	ArtifactCompilerShouldFix = "softwipe_compilation_warnings_should_be_fixed.txt"
	ArtifactCompilerCouldFix  = "softwipe_compilation_warnings_could_be_fixed.txt"
	ArtifactSanitizers        = "softwipe_sanitizer_output.txt"
	ArtifactAssertionCheck    = "softwipe_assertion_check.txt"
	ArtifactCppcheck          = "softwipe_cppcheck_results.txt"
	ArtifactClangTidy         = "softwipe_clang_tidy_results.txt"
	ArtifactLizard            = "softwipe_lizard_results.txt"
	ArtifactKWStyle           = "softwipe_kwstyle_results.txt"
	ArtifactInfer             = "softwipe_infer_results.txt"
	ArtifactInferBuildError   = "softwipe_error_infer_compilation.txt"
)

// writeArtifact writes a tool's detailed findings into the request's output
// directory and returns the path for the log message.
func writeArtifact(req *domain.AnalysisRequest, name, content string) (string, error) {
	dir := req.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func rateLine(metric string, rate float64, count, denominator int) string {
	return fmt.Sprintf("%s rate: %v (%d/%d)", metric, rate, count, denominator)
}

func scoreLine(name string, score float64) string {
	return fmt.Sprintf("%s Score: %.1f/10", name, score)
}

func resultsWrittenLine(path string) string {
	return fmt.Sprintf("Detailed results have been written into %s", path)
}
