package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(RecordSchema()), &v))
	assert.Equal(t, "StructuredRecord", v["title"])
}

func TestValidateRecordJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		field   string
	}{
		{
			name: "full record",
			input: `{"firstName": "Jane", "lastName": "Doe", "about": "", "title": "Engineer",
				"yearsOfExperience": 5, "education": ["BSc", {"degree": "MSc"}], "skills": ["Go"],
				"socialLinks": [{"platformName": "Github", "url": "https://github.com/jane"}],
				"contact": {"email": "jane@example.com", "phone": "", "linkedin": "", "github": "", "portfolio": "", "leetcode": ""},
				"extractedUrls": []}`,
		},
		{name: "empty object", input: `{}`},
		{name: "nulls accepted", input: `{"firstName": null, "skills": null, "contact": null, "yearsOfExperience": null}`},
		{name: "years as string", input: `{"yearsOfExperience": "5+"}`},
		{name: "extra fields ignored", input: `{"nickname": "JD"}`},
		{name: "skills as comma string", input: `{"skills": "Go, SQL"}`, wantErr: true, field: "skills"},
		{name: "contact as string", input: `{"contact": "jane@example.com"}`, wantErr: true, field: "contact"},
		{name: "social link without platform", input: `{"socialLinks": [{"url": "https://x.com/a"}]}`, wantErr: true, field: "socialLinks.0"},
		{name: "array root", input: `[]`, wantErr: true, field: "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordJSON(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.NotEmpty(t, vErr.Errors)
			assert.Equal(t, tt.field, vErr.Errors[0].Field)
		})
	}
}

func TestValidateRecordJSON_Malformed(t *testing.T) {
	err := ValidateRecordJSON(`{"firstName": `)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateRecordFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": ["Go"]}`), 0o600))
	assert.NoError(t, ValidateRecordFile(path))

	err := ValidateRecordFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read record file")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 3}`)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills", Message: "Invalid type"}}}
	assert.Equal(t, "validation failed:\n  1. skills: Invalid type\n", err.Error())
}
