package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	_ "embed"
)

//go:embed tasks.schema.json
var taskSchema []byte

// ValidationResult contains the outcome of validating a task file
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// ValidationError is a schema violation with the JSON path it occurred at
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateFile validates a task file on disk against the embedded schema.
// A missing file is valid (it is treated as an empty list on load).
func ValidateFile(path string) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", bytes.NewReader(taskSchema)); err != nil {
		return nil, fmt.Errorf("load embedded schema: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("not valid JSON: %w", err)})
		return result, nil
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result, nil
}

// appendSchemaErrors flattens jsonschema leaf causes into ValidationErrors
func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	for _, leaf := range leafCauses(ve) {
		result.Errors = append(result.Errors, &ValidationError{
			Path: leaf.InstanceLocation,
			Err:  errors.New(leaf.Message),
		})
	}
}

// leafCauses walks the cause tree and returns the most specific errors
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}
