package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner builds the catalog of test case identifiers from a mocks directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns the sorted identifiers of all <name>.json mocks under root
func (s *Scanner) Scan(root string) ([]string, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("mocks path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mocks path is not a directory: %s", root)
	}

	seen := make(map[string]bool)
	var names []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(d.Name()) != ".json" {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), ".json")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan mocks: %w", err)
	}

	sort.Strings(names)
	return names, nil
}
