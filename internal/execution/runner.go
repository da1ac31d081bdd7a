package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pixcheck/internal/compare"
	"pixcheck/internal/digest"
	"pixcheck/internal/domain"
	"pixcheck/internal/fsx"
	"pixcheck/internal/render"
)

// Reasons reported for cases that could not be evaluated
const (
	ReasonRender          = "error during image rendering"
	ReasonMissingBaseline = "baseline image does not exist"
	ReasonWrite           = "error during test image generation"
	ReasonCompare         = "comparison error"
	ReasonCleanup         = "artifact cleanup error"
	ReasonCancelled       = "run cancelled"
)

// PathResolver maps a test case name to its files
type PathResolver func(name string) domain.TestCase

// Runner executes the comparison protocol for a single test case
type Runner struct {
	paths      PathResolver
	renderer   render.Renderer
	comparator compare.Comparator
}

// NewRunner creates a new Runner
func NewRunner(paths PathResolver, renderer render.Renderer, comparator compare.Comparator) *Runner {
	return &Runner{
		paths:      paths,
		renderer:   renderer,
		comparator: comparator,
	}
}

// Run renders, stores and compares one test case. Every failure ends the case with an outcome.
func (r *Runner) Run(ctx context.Context, name string, rc RunConfig) domain.Outcome {
	start := time.Now()
	o := r.run(ctx, name, rc)
	o.Duration = time.Since(start)
	// Malformed mocks already surface through the renderer
	if d, err := digest.File(r.paths(name).MockPath); err == nil {
		o.MockDigest = d
	}
	return o
}

func (r *Runner) run(ctx context.Context, name string, rc RunConfig) domain.Outcome {
	if ctx.Err() != nil {
		return domain.Error(name, ReasonCancelled, ctx.Err())
	}
	tc := r.paths(name)

	img, err := r.renderer.Render(ctx, tc)
	if err != nil {
		return domain.Error(name, ReasonRender, err)
	}

	exists, err := fsx.Exists(tc.BaselinePath)
	if err != nil {
		return domain.Error(name, ReasonMissingBaseline, err)
	}
	if !exists {
		return domain.Error(name, ReasonMissingBaseline, fmt.Errorf("no baseline at %s", tc.BaselinePath))
	}

	if err := writeCandidate(tc.TestPath, img); err != nil {
		return domain.Error(name, ReasonWrite, err)
	}

	res, err := r.comparator.Compare(ctx, domain.ComparisonRequest{
		TestPath:     tc.TestPath,
		BaselinePath: tc.BaselinePath,
		DiffPath:     tc.DiffPath,
		Highlight:    rc.Highlight,
		Threshold:    rc.Threshold,
	})
	if err != nil {
		return domain.Error(name, ReasonCompare, err)
	}

	if res.Equal {
		if err := fsx.RemoveIfExists(tc.DiffPath); err != nil {
			return domain.Error(name, ReasonCleanup, err)
		}
		return domain.Pass(name, res.Difference)
	}

	o := domain.Fail(name, FailReason(res.Difference, rc.Threshold), res.Difference)
	o.DiffPath = tc.DiffPath
	return o
}

func writeCandidate(path string, img []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create test image dir: %w", err)
	}
	return fsx.WriteFileAtomic(path, img, 0644)
}

// FailReason describes a mismatch as a multiple of the threshold
func FailReason(difference, threshold float64) string {
	if threshold == 0 {
		return fmt.Sprintf("differs by %s with a zero threshold", ToPrecision(difference, 4))
	}
	return fmt.Sprintf("differs by %s times the threshold", ToPrecision(difference/threshold, 4))
}
