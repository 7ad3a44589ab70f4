// Package execx runs external analysis tools and reports their outcome as a
// typed result instead of an error, so adapters can interpret the exit codes
// they know to be benign (several tools exit nonzero merely because they
// found something to report).
package execx

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
)

// Result is the outcome of a completed subprocess.
type Result struct {
	// ExitCode is the process exit status. When the process died by signal
	// the code is the negated signal number (-11 for SIGSEGV), matching how
	// adapters key their crash handling.
	ExitCode int

	// Output is the merged stdout and stderr.
	Output string
}

// Runner executes a command and captures its merged output. An error is
// returned only when the process could not run at all (binary not found,
// context cancelled); ordinary nonzero exits are reported via Result.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// ExecRunner is the os/exec-backed Runner.
type ExecRunner struct{}

// NewRunner returns the default process runner.
func NewRunner() ExecRunner { return ExecRunner{} }

// Run executes name with args in dir (empty dir means the current
// directory), merging stdout and stderr.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	res := Result{Output: string(out)}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.ExitCode = -int(ws.Signal())
		}
		// A timeout kills the process, which surfaces here as a signal
		// death; report the context error so callers can tell it apart
		// from a tool crash.
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, nil
	}

	return res, err
}
