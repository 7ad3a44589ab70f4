package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
)

const lizardOutput = `================================================
  NLOC    CCN   token  PARAM  length  location
------------------------------------------------
      10      3     50      2      12 main@1-12@main.c
       8      2     40      1      10 helper@14-24@main.c
1 file analyzed.
==============================================================
NLOC    Avg.NLOC  AvgCCN  Avg.token  function_cnt    file
--------------------------------------------------------------
     18      9.0     2.5       45.0            2     main.c
=========================================================================================
Total nloc   Avg.NLOC  AvgCCN  Avg.token   Fun Cnt  Warning cnt   Fun Rt   nloc Rt
------------------------------------------------------------------------------------
        18        9.0      2.9       45.0         2            2      0.20     0.30
Total duplicate rate: 5.00%
Total unique rate: 95.00%
`

func TestParseLizardOutput(t *testing.T) {
	summary, err := parseLizardOutput(lizardOutput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AvgCCN != 2.9 {
		t.Errorf("AvgCCN = %v, want 2.9", summary.AvgCCN)
	}
	if summary.WarningCount != 2 {
		t.Errorf("WarningCount = %d, want 2", summary.WarningCount)
	}
	if summary.UniqueRate != 0.95 {
		t.Errorf("UniqueRate = %v, want 0.95", summary.UniqueRate)
	}
}

func TestParseLizardOutputWithoutSummary(t *testing.T) {
	if _, err := parseLizardOutput("nothing useful\n"); err == nil {
		t.Fatal("expected error for output without a summary table")
	}
}

func TestLizardRun(t *testing.T) {
	// Lizard exits 1 when it has complexity warnings; that is valid output.
	runner := &fakeRunner{results: []execx.Result{{ExitCode: 1, Output: lizardOutput}}}
	tool := NewLizardTool(runner)
	req := newTestRequest(t, 100)
	req.SourceFiles = []string{"main.c"}
	req.FunctionCount = 10

	result, err := tool.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Scores) != 3 {
		t.Fatalf("got %d scores, want 3 (complexity, warnings, duplication)", len(result.Scores))
	}
	if !strings.Contains(result.Log, "(2/10)") {
		t.Errorf("log missing warning rate over function count:\n%s", result.Log)
	}
	if !strings.Contains(result.Log, "Average cyclomatic complexity: 2.9") {
		t.Errorf("log missing average CCN:\n%s", result.Log)
	}
}

func TestLizardCrashIsAnError(t *testing.T) {
	runner := &fakeRunner{results: []execx.Result{{ExitCode: 2, Output: "traceback"}}}
	tool := NewLizardTool(runner)
	req := newTestRequest(t, 100)
	req.SourceFiles = []string{"main.c"}

	result, err := tool.Run(context.Background(), req)
	var crash *domain.ToolCrashError
	if !errors.As(err, &crash) {
		t.Fatalf("error = %v, want *domain.ToolCrashError", err)
	}
	if len(result.Scores) != 3 {
		t.Errorf("failed result must still hold 3 zeroed score slots, got %d", len(result.Scores))
	}
}
