package domain

import (
	"context"
)

// BuildSystem identifies how the analyzed program is built. Infer needs to
// re-drive the build to capture a compilation database, so the adapter set
// depends on it.
type BuildSystem string

const (
	BuildSystemCMake BuildSystem = "cmake"
	BuildSystemMake  BuildSystem = "make"
	BuildSystemNone  BuildSystem = "none"
)

// AnalysisRequest carries everything the analysis tools need to run against
// one target program. It is built once by the collaborators (file discovery,
// build phase) before orchestration starts and is read-only afterwards; the
// orchestrator hands the same instance to every tool concurrently.
type AnalysisRequest struct {
	// ProgramDir is the absolute path to the root of the target program.
	ProgramDir string

	// SourceFiles are absolute paths to all C/C++ sources and headers,
	// discovery exclusions already applied.
	SourceFiles []string

	// LinesOfCode counts pure code lines (blank and comment lines stripped)
	// across SourceFiles. Denominator for most warning rates.
	LinesOfCode int

	// FunctionCount is the number of function definitions across
	// SourceFiles. Denominator for complexity-style rates.
	FunctionCount int

	// CPP is true when the program is C++, false for plain C. Some tools
	// take different check sets or language flags.
	CPP bool

	// ExcludedPaths are absolute paths that discovery removed; tools that
	// scan the program directory themselves (infer) must skip these too.
	ExcludedPaths []string

	// CustomAsserts are user-supplied assertion function names counted by
	// the assertion check in addition to assert/static_assert.
	CustomAsserts []string

	// CompilerLogPath points to the warning output of the external build
	// phase. Empty when compilation was skipped; the compiler tool is then
	// excluded before dispatch.
	CompilerLogPath string

	// SanitizerLogPath points to the stderr of the sanitizer-instrumented
	// program run. Empty when execution was skipped.
	SanitizerLogPath string

	// BuildSystem selects how infer drives the build.
	BuildSystem BuildSystem

	// OutputDir is where tools write their result artifacts.
	OutputDir string
}

// WarningRecord is one classified finding of an analysis tool.
type WarningRecord struct {
	// File and Line locate the finding; both may be zero values when the
	// tool reports only aggregate counts.
	File string
	Line int

	// Category is the tool-specific warning identifier, e.g. "-Wconversion"
	// or "bugprone".
	Category string

	// Severity is the classified weight, 1 (could fix) to 3 (must fix).
	Severity int
}

// ToolResult is the uniform outcome of one analysis tool run.
type ToolResult struct {
	// Scores are the tool's sub-scores, each in [0, 10]. A tool usually
	// yields one score; lizard yields three.
	Scores []float64

	// Log is the human-readable per-tool summary printed when the tool
	// succeeds.
	Log string

	// Success reports whether the tool ran to completion. When false the
	// scores are excluded from the composite.
	Success bool
}

// FailedResult returns the result an excluded tool contributes: n zeroed
// scores, no log, success false.
func FailedResult(n int) ToolResult {
	return ToolResult{Scores: make([]float64, n), Log: "", Success: false}
}

// AnalysisTool is the contract every tool adapter implements. Run executes
// the tool against the shared request and never mutates it. Failures are
// reported both ways: the returned result carries Success=false, and the
// error describes what went wrong so the orchestrator can decide (based on
// its skip-on-failure mode) whether to exclude the tool or abort the run.
type AnalysisTool interface {
	// Name is the tool's display name, used in exclusion messages.
	Name() string

	// Run executes the tool. The context bounds the run; adapters must pass
	// it to their subprocesses.
	Run(ctx context.Context, req *AnalysisRequest) (ToolResult, error)
}
