package schedule

import (
	"context"
	"time"
)

// ExecuteFn is a body of the task
type ExecuteFn func(ctx context.Context) error

// Task is a named independent unit of work
type Task struct {
	Name string
	Fn   ExecuteFn

	timeout time.Duration
}

// NewTask creates a task
func NewTask(name string, fn ExecuteFn) *Task {
	return &Task{Name: name, Fn: fn}
}

// WithTimeout overrides the runner timeout for the task
func (t *Task) WithTimeout(timeout time.Duration) *Task {
	t.timeout = timeout
	return t
}

// Outcome is a result of the task execution
type Outcome struct {
	Name     string
	Err      error
	Duration time.Duration
}
