// Package report turns run outcomes into a verdict and machine-readable reports.
package report

import (
	"fmt"
	"strings"

	"pixcheck/internal/domain"
)

// Summary is the aggregated view of a run
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
	// NonPassing keeps every Fail and Error outcome, in run order
	NonPassing []domain.Outcome
}

// Aggregate counts outcomes; success is true iff every outcome is a Pass
func Aggregate(outcomes []domain.Outcome) (Summary, bool) {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusPass:
			s.Passed++
			continue
		case domain.StatusFail:
			s.Failed++
		default:
			s.Errored++
		}
		s.NonPassing = append(s.NonPassing, o)
	}
	return s, s.Passed == s.Total
}

// Lines renders the summary as plain text lines: one per non-passing case, then the counts
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.NonPassing)+1)
	for _, o := range s.NonPassing {
		lines = append(lines, fmt.Sprintf("%s: %s", o.Name, o.Reason))
	}
	lines = append(lines, fmt.Sprintf("%d passed, %d failed, %d errored (%d total)", s.Passed, s.Failed, s.Errored, s.Total))
	return lines
}

func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}

// Meta builds the stored run metadata
func (s Summary) Meta(base domain.RunMeta) domain.RunMeta {
	base.Total = s.Total
	base.Passed = s.Passed
	base.Failed = s.Failed
	base.Errored = s.Errored
	return base
}
