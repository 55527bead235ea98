package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

// writeFiles writes each name/content pair into a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestValidateJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.json":        personSchema,
		"valid.json":         `{"name": "Ada", "age": 36}`,
		"missing_field.json": `{"name": "Ada"}`,
		"wrong_type.json":    `{"name": "Ada", "age": "thirty-six"}`,
	})
	schemaPath := filepath.Join(dir, "schema.json")

	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{"valid document", "valid.json", false},
		{"missing required field", "missing_field.json", true},
		{"wrong type", "wrong_type.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schemaPath, filepath.Join(dir, tt.jsonFile))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	dir := writeFiles(t, map[string]string{"valid.json": `{}`})

	err := ValidateJSON(filepath.Join(dir, "nonexistent_schema.json"), filepath.Join(dir, "valid.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"schema.json": personSchema})

	err := ValidateJSON(filepath.Join(dir, "schema.json"), filepath.Join(dir, "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.json":    personSchema,
		"malformed.json": "{ invalid json }",
	})

	err := ValidateJSON(filepath.Join(dir, "schema.json"), filepath.Join(dir, "malformed.json"))
	require.Error(t, err)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Source, "malformed.json")
}

func TestValidateJSONBytes(t *testing.T) {
	dir := writeFiles(t, map[string]string{"schema.json": personSchema})
	schemaPath := filepath.Join(dir, "schema.json")

	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"name": "Ada", "age": 36}`)))

	err := ValidateJSONBytes(schemaPath, []byte(`{"name": "Ada", "age": -1}`))
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "age", validationErr.Errors[0].Field)

	err = ValidateJSONBytes(filepath.Join(dir, "missing.json"), []byte(`{}`))
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONBytes_SkillMatchResultSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath("schemas/skill_match_result.schema.json")
	require.NotEmpty(t, schemaPath, "schema should resolve from the package directory")

	doc := `{"matched_skills": ["go"], "missing_skills": [], "extra_skills": ["go"], "matched_skill_percentage": 100}`
	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(doc)))
}

func TestResolveSchemaPath_Missing(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSON_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"person": {}}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}

func TestValidateJSON_ArrayValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`

	jsonContent := `{"items": []}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items")
}

func TestValidateJSONBytes_InvalidSchema(t *testing.T) {
	dir := writeFiles(t, map[string]string{"schema.json": `{"type": 12}`})

	err := ValidateJSONBytes(filepath.Join(dir, "schema.json"), []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONBytes_CachesCompiledSchema(t *testing.T) {
	dir := writeFiles(t, map[string]string{"schema.json": personSchema})
	schemaPath := filepath.Join(dir, "schema.json")

	require.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"name": "Ada", "age": 36}`)))

	// Removing the file does not matter once the schema is compiled.
	require.NoError(t, os.Remove(schemaPath))
	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"name": "Ada", "age": 36}`)))
}
