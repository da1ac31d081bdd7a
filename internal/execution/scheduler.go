package execution

import (
	"context"
	"sync"
)

// Scheduler decides when the work unit for each position of a test set runs.
// unit is called exactly once for every index in [0, n).
type Scheduler interface {
	Schedule(ctx context.Context, n int, unit func(ctx context.Context, i int))
}

// NewScheduler returns the scheduler for the run's concurrency model
func NewScheduler(rc RunConfig) Scheduler {
	if rc.Model == ModelQueue {
		return NewQueueScheduler()
	}
	return NewBatchScheduler(rc.MaxParallel)
}

// BatchScheduler runs units on a fixed pool of workers fed from a channel
type BatchScheduler struct {
	limit int
}

// NewBatchScheduler creates a BatchScheduler with at most limit units in flight
func NewBatchScheduler(limit int) *BatchScheduler {
	if limit <= 0 {
		limit = 1
	}
	return &BatchScheduler{limit: limit}
}

// Schedule blocks until every unit has run
func (s *BatchScheduler) Schedule(ctx context.Context, n int, unit func(ctx context.Context, i int)) {
	if n == 0 {
		return
	}
	queue := make(chan int, n)
	for i := 0; i < n; i++ {
		queue <- i
	}
	close(queue)

	workerCount := s.limit
	if workerCount > n {
		workerCount = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				unit(ctx, i)
			}
		}()
	}
	wg.Wait()
}

// QueueScheduler runs units one at a time in index order
type QueueScheduler struct{}

// NewQueueScheduler creates a QueueScheduler
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

// Schedule runs unit i to completion before starting unit i+1
func (s *QueueScheduler) Schedule(ctx context.Context, n int, unit func(ctx context.Context, i int)) {
	for i := 0; i < n; i++ {
		unit(ctx, i)
	}
}
