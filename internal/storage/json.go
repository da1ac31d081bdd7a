package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pixcheck/internal/domain"
	"pixcheck/internal/fsx"
)

// Save writes the run to the configured JSON output file.
func (s *JSONStorage) Save(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := fsx.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	if err := ValidateResults(data); err != nil {
		return nil, fmt.Errorf("invalid results file %s: %w", path, err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// FailedNames returns the names of non-passing cases of the last run; no stored run yields nil.
func FailedNames(st Storage) map[string]struct{} {
	output, err := st.Load()
	if err != nil {
		return nil
	}
	names := make(map[string]struct{})
	for _, o := range output.NonPassing() {
		names[o.Name] = struct{}{}
	}
	return names
}
