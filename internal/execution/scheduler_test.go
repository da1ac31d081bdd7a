package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBatchScheduler_Bound(t *testing.T) {
	const n, limit = 20, 4

	var inFlight, maxInFlight int32
	var mu sync.Mutex
	seen := make(map[int]int)

	NewBatchScheduler(limit).Schedule(context.Background(), n, func(ctx context.Context, i int) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		mu.Lock()
		seen[i]++
		mu.Unlock()
	})

	if maxInFlight > limit {
		t.Errorf("expected at most %d units in flight, saw %d", limit, maxInFlight)
	}
	if maxInFlight < 2 {
		t.Errorf("expected units to run concurrently, saw %d in flight", maxInFlight)
	}
	if len(seen) != n {
		t.Errorf("expected %d units, got %d", n, len(seen))
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("unit %d ran %d times", i, count)
		}
	}
}

func TestBatchScheduler_Empty(t *testing.T) {
	called := false
	NewBatchScheduler(4).Schedule(context.Background(), 0, func(ctx context.Context, i int) { called = true })
	if called {
		t.Error("no unit should run for an empty set")
	}
}

func TestQueueScheduler_Order(t *testing.T) {
	var order []int
	var inFlight int32

	NewQueueScheduler().Schedule(context.Background(), 5, func(ctx context.Context, i int) {
		if atomic.AddInt32(&inFlight, 1) != 1 {
			t.Errorf("unit %d started while another was running", i)
		}
		order = append(order, i)
		atomic.AddInt32(&inFlight, -1)
	})

	for i, got := range order {
		if got != i {
			t.Fatalf("expected strict order, got %v", order)
		}
	}
	if len(order) != 5 {
		t.Errorf("expected 5 units, got %d", len(order))
	}
}

func TestNewScheduler(t *testing.T) {
	if _, ok := NewScheduler(RunConfig{Model: ModelQueue}).(*QueueScheduler); !ok {
		t.Error("expected QueueScheduler for queue model")
	}
	if _, ok := NewScheduler(RunConfig{Model: ModelBatch, MaxParallel: 2}).(*BatchScheduler); !ok {
		t.Error("expected BatchScheduler for batch model")
	}
}
