package tools

import (
	"context"
	"testing"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
)

// fakeRunner records invocations and replays canned results. When more
// calls arrive than results were queued, the last result repeats.
type fakeRunner struct {
	calls   [][]string
	dirs    []string
	results []execx.Result
	errs    []error

	// onCall, when set, runs before each canned result is returned. Tests
	// use it to drop files a later pipeline step expects.
	onCall func(call int, name string, args []string)
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (execx.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	if f.onCall != nil {
		f.onCall(len(f.calls)-1, name, args)
	}

	i := len(f.calls) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	if i < 0 {
		return execx.Result{}, nil
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.results[i], err
}

// newTestRequest builds a minimal request with artifacts going into a temp
// directory.
func newTestRequest(t *testing.T, linesOfCode int) *domain.AnalysisRequest {
	t.Helper()
	return &domain.AnalysisRequest{
		ProgramDir:    t.TempDir(),
		LinesOfCode:   linesOfCode,
		FunctionCount: 10,
		OutputDir:     t.TempDir(),
	}
}
