package execution

import (
	"context"
	"time"

	"pixcheck/internal/domain"
)

// Executor runs a test set and returns one outcome per test case, in set order
type Executor interface {
	Execute(ctx context.Context, set domain.TestSet, rc RunConfig) ([]domain.Outcome, time.Duration, error)
}

// Progress receives outcomes as they complete
type Progress interface {
	Update(o domain.Outcome)
	Finish()
}
