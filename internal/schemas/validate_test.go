package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Resume(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "empty document", doc: `{}`},
		{name: "string location", doc: `{"basics":{"name":"Ada","location":"London"}}`},
		{name: "structured location", doc: `{"basics":{"location":{"city":"London","countryCode":"GB"}}}`},
		{name: "skills and projects", doc: `{"skills":[{"name":"math","level":90}],"projects":[{"name":"Engine","urls":{"live":"x"},"year":1843}]}`},
		{name: "skills not an array", doc: `{"skills":{"name":"math"}}`, wantErr: true},
		{name: "level not a number", doc: `{"skills":[{"name":"math","level":"high"}]}`, wantErr: true},
		{name: "fractional year", doc: `{"projects":[{"year":1843.5}]}`, wantErr: true},
		{name: "root not an object", doc: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(Resume, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Messages())
		})
	}
}

func TestValidateJSON_MarketplaceSubmission(t *testing.T) {
	valid := `{"name":"Neon Hero","description":"Glowing","section":"hero","category":"layout",
		"componentCode":"export default () => null","defaultStyles":{"backgroundColor":"#000000"}}`
	assert.NoError(t, ValidateJSON(MarketplaceSubmission, []byte(valid)))

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "missing code", doc: `{"name":"Neon","description":"d","section":"hero","category":"layout"}`, field: "(root)"},
		{name: "unknown section", doc: `{"name":"Neon","description":"d","section":"sidebar","category":"layout","componentCode":"x"}`, field: "section"},
		{name: "bad color", doc: `{"name":"Neon","description":"d","section":"hero","category":"layout","componentCode":"x","defaultStyles":{"textColor":"red; background:url(x)"}}`, field: "defaultStyles.textColor"},
		{name: "duplicate tags", doc: `{"name":"Neon","description":"d","section":"hero","category":"layout","componentCode":"x","tags":["a","a"]}`, field: "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(MarketplaceSubmission, []byte(tt.doc))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, e := range validationErr.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateJSON_UnknownSchema(t *testing.T) {
	err := ValidateJSON("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	err := ValidateJSON(Resume, []byte(`{"basics":`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"basics":{"name":"Ada"}}`), 0o600))

	assert.NoError(t, ValidateFile(Resume, path))

	err := ValidateFile(Resume, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["id"],"properties":{"id":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"id":"x"}`))

	err := ValidateJSONString(schema, `{"id":1}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Errors[0].Field)
}
