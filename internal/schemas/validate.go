// Package schemas validates match results and synonym tables against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ResolveSchemaPath finds relativePath from the working directory or up to
// two levels above it, so commands and tests resolve the repository's
// schemas/ directory alike. It returns "" when no candidate exists.
func ResolveSchemaPath(relativePath string) string {
	for _, candidate := range []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	} {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return ""
}

// FieldError is one violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every way a document violates its schema.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError is a schema that cannot be read or compiled.
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

// DocumentError is a document that is not well-formed JSON.
type DocumentError struct {
	Source string
	Cause  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid JSON document %s: %v", e.Source, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// compiled caches schemas by absolute path. Schema files are not expected to
// change while the process runs.
var compiled sync.Map // map[string]*gojsonschema.Schema

func loadSchemaFile(schemaPath string) (*gojsonschema.Schema, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if cached, ok := compiled.Load(absPath); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema file not found: %s", absPath)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(absPath)))
	if err != nil {
		return nil, &SchemaLoadError{Path: absPath, Message: "invalid schema", Cause: err}
	}
	compiled.Store(absPath, schema)
	return schema, nil
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at
// schemaPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return validateBytes(schemaPath, jsonPath, data)
}

// ValidateJSONBytes validates in-memory JSON against a JSON Schema file.
func ValidateJSONBytes(schemaPath string, data []byte) error {
	return validateBytes(schemaPath, "(bytes)", data)
}

func validateBytes(schemaPath, source string, data []byte) error {
	schema, err := loadSchemaFile(schemaPath)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		var v any
		return &DocumentError{Source: source, Cause: json.Unmarshal(data, &v)}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &DocumentError{Source: source, Cause: err}
	}
	return resultError(result)
}

// ValidateJSONString validates JSON content against schema content, both
// given as strings. The schema is compiled on every call.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "invalid schema", Cause: err}
	}
	if !json.Valid([]byte(jsonContent)) {
		var v any
		return &DocumentError{Source: "(string)", Cause: json.Unmarshal([]byte(jsonContent), &v)}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &DocumentError{Source: "(string)", Cause: err}
	}
	return resultError(result)
}

// resultError converts a failed result into a *ValidationError, or nil when valid.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}
