package execution

import (
	"context"
	"sync"
	"time"

	"pixcheck/internal/domain"
)

// WorkerPool runs a test set through a Runner under the run's concurrency model
type WorkerPool struct {
	runner   *Runner
	progress Progress
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(runner *Runner) *WorkerPool {
	return &WorkerPool{runner: runner}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs every case of set and returns their outcomes in set order.
// A failing case never stops the others; cases not started before ctx is done are reported as cancelled.
func (wp *WorkerPool) Execute(ctx context.Context, set domain.TestSet, rc RunConfig) ([]domain.Outcome, time.Duration, error) {
	if err := rc.Validate(); err != nil {
		return nil, 0, err
	}
	if len(set) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	outcomes := make([]domain.Outcome, len(set))
	var mu sync.Mutex

	NewScheduler(rc).Schedule(ctx, len(set), func(ctx context.Context, i int) {
		// Each index is written by exactly one unit
		outcomes[i] = wp.runner.Run(ctx, set[i], rc)

		if wp.progress != nil {
			mu.Lock()
			wp.progress.Update(outcomes[i])
			mu.Unlock()
		}
	})

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return outcomes, time.Since(startTime), nil
}
