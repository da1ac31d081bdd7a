package domain

// TestCase is a single image test selected for a run
type TestCase struct {
	Name         string // Identifier, e.g. "bar_basic"
	MockPath     string // Figure description handed to the renderer
	BaselinePath string // Accepted reference image
	TestPath     string // Candidate image written this run
	DiffPath     string // Diff artifact produced on mismatch
}

// TestSet is an ordered list of unique test case identifiers
type TestSet []string

// Index returns the position of name in the set, or -1
func (s TestSet) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}
