package storage

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed results.schema.json
var resultsSchemaJSON []byte

var (
	resultsSchemaOnce sync.Once
	resultsSchema     *jsonschema.Schema
	resultsSchemaErr  error
)

func loadResultsSchema() (*jsonschema.Schema, error) {
	resultsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		resultsSchema, resultsSchemaErr = compiler.Compile(resultsSchemaJSON)
		if resultsSchemaErr != nil {
			resultsSchemaErr = fmt.Errorf("compile results schema: %w", resultsSchemaErr)
		}
	})
	return resultsSchema, resultsSchemaErr
}

// ValidateResults checks a results document before it is trusted by list, --failed and failures
func ValidateResults(data []byte) error {
	schema, err := loadResultsSchema()
	if err != nil {
		return err
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
