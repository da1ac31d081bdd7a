// Package compare implements the pixel comparison used to judge candidate images.
package compare

import (
	"context"

	"pixcheck/internal/domain"
)

// Comparator compares a candidate image with its baseline
type Comparator interface {
	Compare(ctx context.Context, req domain.ComparisonRequest) (domain.ComparisonResult, error)
}
