package domain

import (
	"errors"
	"fmt"
)

// ErrNoScore is returned by the aggregator when every tool was excluded.
var ErrNoScore = errors.New("no score available")

// ToolCrashError reports a subprocess that failed for reasons unrelated to
// the analyzed code: missing compilation database, internal segfault, or a
// build prerequisite that could not be satisfied.
type ToolCrashError struct {
	Tool     string
	ExitCode int
	Output   string
	Err      error
}

func (e *ToolCrashError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s crashed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s crashed with exit code %d", e.Tool, e.ExitCode)
}

func (e *ToolCrashError) Unwrap() error { return e.Err }

// NewToolCrashError wraps a subprocess failure.
func NewToolCrashError(tool string, exitCode int, output string, err error) *ToolCrashError {
	return &ToolCrashError{Tool: tool, ExitCode: exitCode, Output: output, Err: err}
}

// MissingArtifactError reports that a tool ran but its expected report file
// is absent.
type MissingArtifactError struct {
	Tool string
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s did not produce expected report %s", e.Tool, e.Path)
}

// NewMissingArtifactError constructs a MissingArtifactError.
func NewMissingArtifactError(tool, path string) *MissingArtifactError {
	return &MissingArtifactError{Tool: tool, Path: path}
}

// MalformedInputError reports inputs the tool cannot score: a zero rate
// denominator, or tool output missing its required marker lines.
type MalformedInputError struct {
	Tool   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: malformed input: %s", e.Tool, e.Reason)
}

// NewMalformedInputError constructs a MalformedInputError.
func NewMalformedInputError(tool, reason string) *MalformedInputError {
	return &MalformedInputError{Tool: tool, Reason: reason}
}
