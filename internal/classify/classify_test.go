package classify

import (
	"testing"

	"github.com/adrianzap/softwipe/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		table      Table
		identifier string
		want       Severity
	}{
		{"known must-fix compiler flag", CompilerWarnings, "-Wuninitialized", SeverityMustFix},
		{"unknown flag defaults to could-fix", CompilerWarnings, "-Wtotally-made-up", SeverityCouldFix},
		{"cppcheck error", CppcheckWarnings, "error", SeverityMustFix},
		{"cppcheck style", CppcheckWarnings, "style", SeverityCouldFix},
		{"cppcheck information weighs nothing", CppcheckWarnings, "information", 0},
		{"clang-tidy bugprone category", ClangTidyWarnings, "bugprone", SeverityShouldFix},
		{"clang-tidy readability category", ClangTidyWarnings, "readability", SeverityCouldFix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.Classify(tt.identifier); got != tt.want {
				t.Errorf("Classify(%q) = %d, want %d", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestRecordCarriesSeverity(t *testing.T) {
	r := CppcheckWarnings.Record("foo.c", 12, "warning")
	if r.File != "foo.c" || r.Line != 12 || r.Category != "warning" {
		t.Errorf("unexpected record %+v", r)
	}
	if r.Severity != int(SeverityMustFix) {
		t.Errorf("Severity = %d, want %d", r.Severity, SeverityMustFix)
	}
}

func TestWeightedCount(t *testing.T) {
	records := []domain.WarningRecord{
		{Severity: 3},
		{Severity: 1},
		{Severity: 2},
		{Severity: 0},
	}
	if got := WeightedCount(records); got != 6 {
		t.Errorf("WeightedCount = %d, want 6", got)
	}
	if got := WeightedCount(nil); got != 0 {
		t.Errorf("WeightedCount(nil) = %d, want 0", got)
	}
}
