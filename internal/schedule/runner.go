// Package schedule runs independent tasks concurrently, isolating their failures
package schedule

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go-micro.dev/v4/logger"
)

const maxTaskTimeout = 10 * time.Minute

// ErrPanic is returned for tasks which panicked
var ErrPanic = errors.New("task panicked")

// Runner executes tasks with bounded concurrency
type Runner struct {
	workers int
	timeout time.Duration
}

// New creates a runner. Zero timeout means the default one.
func New(workers int, timeout time.Duration) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = maxTaskTimeout
	}
	return &Runner{workers: workers, timeout: timeout}
}

// Run executes every task and waits for all of them. Outcomes follow the order of tasks.
// A failed or panicked task never affects the others.
func (r *Runner) Run(ctx context.Context, tasks ...*Task) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	p := pool.New().WithMaxGoroutines(r.workers)

	for i, t := range tasks {
		i, t := i, t
		outcomes[i].Name = t.Name
		if t.Fn == nil {
			outcomes[i].Err = fmt.Errorf("task '%s' has no body", t.Name)
			continue
		}
		p.Go(func() {
			started := time.Now()
			outcomes[i].Err = r.run(ctx, t)
			outcomes[i].Duration = time.Since(started)
		})
	}

	p.Wait()
	return outcomes
}

func (r *Runner) run(ctx context.Context, t *Task) (err error) {
	timeout := r.timeout
	if t.timeout != 0 {
		timeout = t.timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Errorf("Task '%s' panicked: %v\n%s", t.Name, rec, debug.Stack())
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	if err = t.Fn(ctx); err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return
}
