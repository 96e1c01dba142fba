// Package schemas provides JSON Schema validation for structured records.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed structured_record.schema.json
var recordSchema string

var (
	recordSchemaOnce     sync.Once
	recordSchemaCompiled *gojsonschema.Schema
	recordSchemaErr      error
)

// RecordSchema returns the embedded StructuredRecord JSON Schema.
func RecordSchema() string {
	return recordSchema
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema or document
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateRecordJSON validates JSON content against the embedded record schema.
func ValidateRecordJSON(jsonContent string) error {
	recordSchemaOnce.Do(func() {
		recordSchemaCompiled, recordSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	})
	if recordSchemaErr != nil {
		return &SchemaLoadError{Path: "structured_record.schema.json", Message: "invalid embedded schema", Cause: recordSchemaErr}
	}

	result, err := recordSchemaCompiled.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: "structured_record.schema.json", Message: "document could not be loaded", Cause: err}
	}
	return toValidationError(result)
}

// ValidateRecordFile validates a saved record file against the embedded schema.
func ValidateRecordFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	return ValidateRecordJSON(string(data))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
