package scoring

// CalibrationVersion identifies the compiled-in calibration set. Scores are
// only comparable between runs built with the same version.
const CalibrationVersion = 1

// Calibration pairs derived from the code quality benchmark corpus. These
// are versioned literals, not runtime configuration.
//
// The warning-rate metrics float: their best rates were observed on the
// benchmark, not at an absolute extreme. Assertions pin the worst end (a
// program with zero assertions scores exactly 0) and the unique rate pins
// the best end (a fully duplicate-free tree cannot be improved on).
var (
	CompilerCurve   = MustCurve(0.028, 0.5, Floating)
	AssertionCurve  = MustCurve(0.0078, 0, WorstFixed)
	CppcheckCurve   = MustCurve(0.001, 0.1, Floating)
	ClangTidyCurve  = MustCurve(0.001, 0.26, Floating)
	CyclomaticCurve = MustCurve(2.6, 22.2, Floating)
	LizardCurve     = MustCurve(0.0175, 0.3, Floating)
	UniqueCurve     = MustCurve(0.98, 0.815, BestFixed)
	KWStyleCurve    = MustCurve(0.0014, 0.29, Floating)

	// No benchmark constants exist yet for infer and the test-count check.
	// Infer reuses the cppcheck pair as a provisional stand-in; the
	// test-count pair assumes a fifth of the code being tests is ideal.
	// Recalibrate both against the benchmark corpus before relying on them
	// for cross-project comparison.
	InferCurve     = MustCurve(0.001, 0.1, Floating)
	TestCountCurve = MustCurve(0.2, 0, WorstFixed)
)
