// Package service orchestrates the analysis pipeline: running the tools
// concurrently, folding their results into a report, and maintaining the
// score badge.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adrianzap/softwipe/domain"
	"golang.org/x/sync/errgroup"
)

// Default values for the orchestrator.
const (
	DefaultMaxConcurrency = 6
	DefaultToolTimeout    = 15 * time.Minute
)

// ToolError represents a single tool failure.
type ToolError struct {
	ToolName string
	Err      error
}

// Error implements the error interface.
func (e ToolError) Error() string {
	return fmt.Sprintf("[%s] %v", e.ToolName, e.Err)
}

// Unwrap returns the underlying error.
func (e ToolError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all tool failures.
type AggregatedError struct {
	Errors []ToolError
}

// Error implements the error interface.
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tools failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ToolOutcome is one tool's contribution to the report, in dispatch order.
// An excluded tool contributes no scores but still occupies its slot so the
// report order matches the tool order.
type ToolOutcome struct {
	ToolName string
	Result   domain.ToolResult
	Err      error
	Excluded bool
}

// Orchestrator runs the analysis tools concurrently against one request.
// Tool failures never corrupt each other's results: each tool works on its
// own outcome slot and failures only mark that slot excluded.
type Orchestrator struct {
	maxConcurrency int
	toolTimeout    time.Duration
	skipOnFailure  bool
	progress       domain.ProgressManager
	mu             sync.RWMutex
}

// NewOrchestrator creates an orchestrator with the default pool size and
// per-tool timeout. Skip-on-failure is on: a failing tool is excluded from
// the score instead of aborting the run.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		maxConcurrency: DefaultMaxConcurrency,
		toolTimeout:    DefaultToolTimeout,
		skipOnFailure:  true,
	}
}

// NewOrchestratorWithProgress creates an orchestrator that reports per-tool
// progress.
func NewOrchestratorWithProgress(pm domain.ProgressManager) *Orchestrator {
	o := NewOrchestrator()
	o.progress = pm
	return o
}

// SetMaxConcurrency sets the number of tools allowed to run at once.
func (o *Orchestrator) SetMaxConcurrency(max int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if max > 0 {
		o.maxConcurrency = max
	}
}

// SetToolTimeout sets the per-tool timeout.
func (o *Orchestrator) SetToolTimeout(timeout time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if timeout > 0 {
		o.toolTimeout = timeout
	}
}

// SetSkipOnFailure controls whether a failing tool is excluded (true) or
// aborts the whole run (false).
func (o *Orchestrator) SetSkipOnFailure(skip bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipOnFailure = skip
}

// Run executes all tools against the request. The returned outcomes are in
// tool order regardless of completion order. With skip-on-failure the error
// is nil even when tools failed; their outcomes carry the failure. Without
// it, the first failure cancels the remaining tools and an AggregatedError
// reports everything that failed.
func (o *Orchestrator) Run(ctx context.Context, req *domain.AnalysisRequest, tools []domain.AnalysisTool) ([]ToolOutcome, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	o.mu.RLock()
	maxConcurrency := o.maxConcurrency
	toolTimeout := o.toolTimeout
	skipOnFailure := o.skipOnFailure
	o.mu.RUnlock()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if o.progress != nil {
		task = o.progress.StartTask("Running analysis tools", len(tools))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	outcomes := make([]ToolOutcome, len(tools))

	var errMu sync.Mutex
	var toolErrors []ToolError

	for i, tool := range tools {
		i, tool := i, tool
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				outcomes[i] = ToolOutcome{ToolName: tool.Name(), Err: gCtx.Err(), Excluded: true}
				return nil
			default:
			}

			toolCtx, cancel := context.WithTimeout(gCtx, toolTimeout)
			result, err := tool.Run(toolCtx, req)
			cancel()

			task.Increment(1)

			if err != nil {
				outcomes[i] = ToolOutcome{ToolName: tool.Name(), Result: result, Err: err, Excluded: true}
				errMu.Lock()
				toolErrors = append(toolErrors, ToolError{ToolName: tool.Name(), Err: err})
				errMu.Unlock()
				if !skipOnFailure {
					// Cancels the group so pending tools stop early.
					return err
				}
				return nil
			}

			outcomes[i] = ToolOutcome{ToolName: tool.Name(), Result: result}
			return nil
		})
	}

	err := g.Wait()

	if !skipOnFailure && err != nil {
		return outcomes, &AggregatedError{Errors: toolErrors}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcomes, ctxErr
	}
	return outcomes, nil
}
