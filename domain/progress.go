package domain

// ProgressManager creates progress tasks for long-running operations.
// Implementations decide whether to render anything (interactive terminals)
// or stay silent (pipes, CI).
type ProgressManager interface {
	// StartTask begins tracking an operation with a known total.
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is actually rendered.
	IsInteractive() bool

	// Close finishes all outstanding tasks.
	Close()
}

// TaskProgress tracks one operation.
type TaskProgress interface {
	// Increment advances the task by n steps.
	Increment(n int)

	// Describe updates the task description.
	Describe(description string)

	// Complete marks the task as finished.
	Complete()
}
