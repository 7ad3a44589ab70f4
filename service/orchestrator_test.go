package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianzap/softwipe/domain"
)

// stubTool is a canned AnalysisTool for orchestrator tests.
type stubTool struct {
	name   string
	result domain.ToolResult
	err    error
	delay  time.Duration
	onRun  func()
}

func (s *stubTool) Name() string { return s.name }

func (s *stubTool) Run(ctx context.Context, req *domain.AnalysisRequest) (domain.ToolResult, error) {
	if s.onRun != nil {
		s.onRun()
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return domain.FailedResult(1), ctx.Err()
		}
	}
	return s.result, s.err
}

func okTool(name string, scores ...float64) *stubTool {
	return &stubTool{
		name:   name,
		result: domain.ToolResult{Scores: scores, Log: name + " log", Success: true},
	}
}

func failingTool(name string, err error) *stubTool {
	return &stubTool{name: name, result: domain.FailedResult(1), err: err}
}

func TestOrchestratorRunEmpty(t *testing.T) {
	outcomes, err := NewOrchestrator().Run(context.Background(), &domain.AnalysisRequest{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcomes != nil {
		t.Errorf("Run() outcomes = %v, want nil", outcomes)
	}
}

func TestOrchestratorOutcomesInToolOrder(t *testing.T) {
	tools := []domain.AnalysisTool{
		okTool("Alpha", 1),
		okTool("Beta", 2),
		okTool("Gamma", 3),
	}
	// Make the first tool finish last so completion order differs from
	// dispatch order.
	tools[0].(*stubTool).delay = 50 * time.Millisecond

	outcomes, err := NewOrchestrator().Run(context.Background(), &domain.AnalysisRequest{}, tools)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != len(tools) {
		t.Fatalf("len(outcomes) = %d, want %d", len(outcomes), len(tools))
	}
	for i, tool := range tools {
		if outcomes[i].ToolName != tool.Name() {
			t.Errorf("outcomes[%d].ToolName = %q, want %q", i, outcomes[i].ToolName, tool.Name())
		}
	}
}

func TestOrchestratorSkipOnFailureExcludesTool(t *testing.T) {
	notFound := errors.New("executable file not found in $PATH")
	tools := []domain.AnalysisTool{
		okTool("Alpha", 8),
		failingTool("Broken", notFound),
		okTool("Gamma", 6),
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), &domain.AnalysisRequest{}, tools)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil with skip-on-failure", err)
	}

	broken := outcomes[1]
	if !broken.Excluded {
		t.Error("failing tool outcome is not marked excluded")
	}
	if !errors.Is(broken.Err, notFound) {
		t.Errorf("broken.Err = %v, want %v", broken.Err, notFound)
	}
	if broken.Result.Success {
		t.Error("failing tool result reports success")
	}

	for _, i := range []int{0, 2} {
		if outcomes[i].Excluded {
			t.Errorf("outcomes[%d] excluded, want healthy tool to survive a sibling failure", i)
		}
	}
}

func TestOrchestratorNoSkipAggregatesErrors(t *testing.T) {
	tools := []domain.AnalysisTool{
		okTool("Alpha", 8),
		failingTool("Broken", errors.New("boom")),
	}

	o := NewOrchestrator()
	o.SetSkipOnFailure(false)

	_, err := o.Run(context.Background(), &domain.AnalysisRequest{}, tools)
	if err == nil {
		t.Fatal("Run() error = nil, want AggregatedError without skip-on-failure")
	}
	var agg *AggregatedError
	if !errors.As(err, &agg) {
		t.Fatalf("Run() error = %T, want *AggregatedError", err)
	}
	if len(agg.Errors) != 1 {
		t.Fatalf("len(agg.Errors) = %d, want 1", len(agg.Errors))
	}
	if agg.Errors[0].ToolName != "Broken" {
		t.Errorf("agg.Errors[0].ToolName = %q, want %q", agg.Errors[0].ToolName, "Broken")
	}
}

func TestOrchestratorRespectsConcurrencyLimit(t *testing.T) {
	var running, peak int32
	var mu sync.Mutex

	tools := make([]domain.AnalysisTool, 6)
	for i := range tools {
		tools[i] = &stubTool{
			name:   "Tool",
			result: domain.ToolResult{Scores: []float64{5}, Success: true},
			onRun: func() {
				n := atomic.AddInt32(&running, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&running, -1)
			},
		}
	}

	o := NewOrchestrator()
	o.SetMaxConcurrency(2)

	if _, err := o.Run(context.Background(), &domain.AnalysisRequest{}, tools); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", peak)
	}
}

func TestOrchestratorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tools := []domain.AnalysisTool{okTool("Alpha", 5)}
	outcomes, err := NewOrchestrator().Run(ctx, &domain.AnalysisRequest{}, tools)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Excluded {
		t.Errorf("outcomes = %+v, want one excluded outcome", outcomes)
	}
}

func TestToolErrorFormat(t *testing.T) {
	err := ToolError{ToolName: "Cppcheck", Err: errors.New("crashed")}
	if got := err.Error(); got != "[Cppcheck] crashed" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap() does not expose the underlying error")
	}
}

func TestAggregatedErrorFormat(t *testing.T) {
	agg := &AggregatedError{Errors: []ToolError{
		{ToolName: "A", Err: errors.New("one")},
		{ToolName: "B", Err: errors.New("two")},
	}}
	got := agg.Error()
	if !strings.HasPrefix(got, "2 tools failed:") {
		t.Errorf("Error() = %q, want count prefix", got)
	}
	if !strings.Contains(got, "[A] one") || !strings.Contains(got, "[B] two") {
		t.Errorf("Error() = %q, want both tool messages", got)
	}

	single := &AggregatedError{Errors: agg.Errors[:1]}
	if single.Error() != "[A] one" {
		t.Errorf("single Error() = %q", single.Error())
	}
}
