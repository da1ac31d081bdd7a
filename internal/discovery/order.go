package discovery

import "pixcheck/internal/domain"

// Gl2dPattern is the pattern that asks for the whole gl2d family
const Gl2dPattern = "gl2d_*"

// Gl2dPriority lists the gl2d cases that must run before the others, in order.
// They use a different shader program binding and conflict with the rest of the
// family when they share a GL context after it.
var Gl2dPriority = []string{"gl2d_pointcloud-basic", "gl2d_heatmapgl"}

// Plan describes how a selection has to be ordered before it runs
type Plan struct {
	Reorder bool // Pull the priority cases to the front
	Warn    bool // gl2d family requested in batch mode
}

// Orderer reorders conflict-prone test cases
type Orderer struct {
	trigger  string
	priority []string
}

// NewOrderer creates an Orderer for the gl2d family
func NewOrderer() *Orderer {
	return &Orderer{trigger: Gl2dPattern, priority: Gl2dPriority}
}

// Plan decides whether patterns need reordering and whether running them in batch is unreliable
func (o *Orderer) Plan(patterns []string, queue bool) Plan {
	for _, p := range patterns {
		if p == o.trigger {
			return Plan{Reorder: true, Warn: !queue}
		}
	}
	return Plan{}
}

// Reorder moves the priority cases to the front of set, in priority order, by swapping.
// Cases missing from the set are skipped; the result is always a permutation of set.
func (o *Orderer) Reorder(set domain.TestSet) domain.TestSet {
	out := make(domain.TestSet, len(set))
	copy(out, set)

	pos := 0
	for _, name := range o.priority {
		ind := out.Index(name)
		if ind < 0 {
			continue
		}
		out[pos], out[ind] = out[ind], out[pos]
		pos++
	}
	return out
}
