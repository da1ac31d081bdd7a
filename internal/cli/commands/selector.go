package commands

import (
	"fmt"

	"pixcheck/internal/config"
	"pixcheck/internal/discovery"
	"pixcheck/internal/domain"
	"pixcheck/internal/ui"
)

// Selector turns the command line into the ordered test set of a run
type Selector struct {
	config    *config.Config
	filter    *discovery.Filter
	orderer   *discovery.Orderer
	formatter *ui.Formatter
}

// NewSelector creates a new Selector
func NewSelector(cfg *config.Config, filter *discovery.Filter, orderer *discovery.Orderer, formatter *ui.Formatter) *Selector {
	return &Selector{
		config:    cfg,
		filter:    filter,
		orderer:   orderer,
		formatter: formatter,
	}
}

// Select scans the catalog, applies the patterns and the ordering policy.
// only, when non-nil, restricts the result to the given names.
func (s *Selector) Select(only map[string]struct{}) (domain.TestSet, error) {
	flags := s.config.Flags

	catalog, err := discovery.NewScanner(s.config.PathsToIgnore).Scan(s.config.GetMocksPath())
	if err != nil {
		return nil, err
	}

	sel, err := s.filter.Select(catalog, flags.Patterns)
	if err != nil {
		return nil, fmt.Errorf("select test cases: %w", err)
	}
	s.formatter.PrintExcluded(sel.Excluded)

	set := sel.Set
	if only != nil {
		kept := make(domain.TestSet, 0, len(set))
		for _, name := range set {
			if _, ok := only[name]; ok {
				kept = append(kept, name)
			}
		}
		set = kept
	}

	// gl2d has limited image-test support
	plan := s.orderer.Plan(flags.Patterns, flags.Queue)
	if plan.Warn {
		s.formatter.PrintWarning("Running gl2d image tests in batch may lead to unwanted results")
	}
	if plan.Reorder {
		s.formatter.PrintInfo("Sorting gl2d cases to avoid gl-shader conflicts")
		set = s.orderer.Reorder(set)
	}
	return set, nil
}
