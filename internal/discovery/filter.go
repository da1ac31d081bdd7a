package discovery

import (
	"fmt"
	"path"
	"strings"

	"pixcheck/internal/domain"
)

// Cases that don't behave consistently from run to run and/or machine to machine.
// They are skipped unless explicitly selected.
const (
	UntestableName = "font-wishlist"
	gl2dFamily     = "gl2d_"
	mapboxFamily   = "mapbox_"
)

// Selection is the result of resolving patterns against the catalog
type Selection struct {
	Set      domain.TestSet
	Excluded []string // Untestable cases dropped from a default run, in catalog order
}

// Filter selects test cases from the catalog by glob pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Select resolves patterns against the catalog.
// With no patterns the whole catalog is selected minus untestable cases.
// Patterns are applied in order and use path.Match syntax; a leading "!" removes matches instead.
// A whole-pattern group "(a|b)" or "!(a|b)" stands for one pattern per alternative.
func (f *Filter) Select(catalog []string, patterns []string) (Selection, error) {
	if len(patterns) == 0 {
		var sel Selection
		for _, name := range catalog {
			if IsUntestable(name) {
				sel.Excluded = append(sel.Excluded, name)
				continue
			}
			sel.Set = append(sel.Set, name)
		}
		return sel, nil
	}

	patterns, err := expandGroups(patterns)
	if err != nil {
		return Selection{}, err
	}
	for _, p := range patterns {
		if _, err := path.Match(strings.TrimPrefix(p, "!"), ""); err != nil {
			return Selection{}, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	selected := make(map[string]bool)
	var set domain.TestSet

	// Only negations: start from everything
	if onlyNegations(patterns) {
		for _, name := range catalog {
			if !selected[name] {
				selected[name] = true
				set = append(set, name)
			}
		}
	}

	for _, p := range patterns {
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			set = removeMatching(set, neg, selected)
			continue
		}
		for _, name := range catalog {
			if selected[name] {
				continue
			}
			if matched, _ := path.Match(p, name); matched {
				selected[name] = true
				set = append(set, name)
			}
		}
	}

	return Selection{Set: set}, nil
}

// IsUntestable reports whether name is excluded from default runs
func IsUntestable(name string) bool {
	return name == UntestableName ||
		strings.Contains(name, gl2dFamily) ||
		strings.Contains(name, mapboxFamily)
}

// expandGroups rewrites "!(a|b)" into "!a", "!b" (and "(a|b)" into "a", "b").
// Parentheses or "|" anywhere else are rejected since path.Match would treat them literally.
func expandGroups(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		neg := ""
		body := p
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			neg, body = "!", rest
		}
		if strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")") {
			body = body[1 : len(body)-1]
			for _, alt := range strings.Split(body, "|") {
				if alt == "" || strings.ContainsAny(alt, "()") {
					return nil, fmt.Errorf("invalid pattern %q: empty or nested alternative", p)
				}
				out = append(out, neg+alt)
			}
			continue
		}
		if strings.ContainsAny(body, "()|") {
			return nil, fmt.Errorf("invalid pattern %q: alternatives must wrap the whole pattern, e.g. \"!(gl3d_*|pie_*)\"", p)
		}
		out = append(out, p)
	}
	return out, nil
}

func onlyNegations(patterns []string) bool {
	for _, p := range patterns {
		if !strings.HasPrefix(p, "!") {
			return false
		}
	}
	return true
}

func removeMatching(set domain.TestSet, pattern string, selected map[string]bool) domain.TestSet {
	kept := set[:0]
	for _, name := range set {
		if matched, _ := path.Match(pattern, name); matched {
			delete(selected, name)
			continue
		}
		kept = append(kept, name)
	}
	return kept
}
