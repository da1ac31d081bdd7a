package execution

import (
	"errors"
	"fmt"
	"image/color"

	"pixcheck/internal/config"
)

// ErrInvalidConfig is returned for run settings that cannot be scheduled
var ErrInvalidConfig = errors.New("invalid run configuration")

// Model is the concurrency model of a run
type Model int

const (
	// ModelBatch runs up to MaxParallel cases at once
	ModelBatch Model = iota
	// ModelQueue runs one case at a time, in set order
	ModelQueue
)

func (m Model) String() string {
	if m == ModelQueue {
		return "queue"
	}
	return "batch"
}

// RunConfig is the immutable configuration of one run
type RunConfig struct {
	Model       Model
	MaxParallel int
	Threshold   float64
	Highlight   color.RGBA
	Patterns    []string
}

// NewRunConfig builds and validates the run configuration from the application config
func NewRunConfig(cfg *config.Config) (RunConfig, error) {
	rc := RunConfig{
		Model:       ModelBatch,
		MaxParallel: cfg.ParallelLimit,
		Threshold:   cfg.Threshold,
		Highlight:   cfg.Highlight,
		Patterns:    append([]string(nil), cfg.Flags.Patterns...),
	}
	if cfg.Flags.Queue {
		rc.Model = ModelQueue
		rc.MaxParallel = 1
	}
	if err := rc.Validate(); err != nil {
		return RunConfig{}, err
	}
	return rc, nil
}

// Validate checks the bounds the scheduler relies on
func (rc RunConfig) Validate() error {
	if rc.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %v", ErrInvalidConfig, rc.Threshold)
	}
	if rc.MaxParallel < 1 {
		return fmt.Errorf("%w: parallel limit must be at least 1, got %d", ErrInvalidConfig, rc.MaxParallel)
	}
	return nil
}

// Workers is the number of cases that may be in flight at once
func (rc RunConfig) Workers() int {
	if rc.Model == ModelQueue {
		return 1
	}
	return rc.MaxParallel
}
