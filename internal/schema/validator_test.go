package schema_test

import (
	"strings"
	"testing"

	"go-resume-builder/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *schema.Validator {
	t.Helper()
	v, err := schema.NewValidator()
	require.NoError(t, err)
	return v
}

// mentions reports whether any violation references the given field name in
// its path or message.
func mentions(result schema.Result, field string) bool {
	for _, violation := range result.Errors {
		if strings.Contains(violation.Path, field) || strings.Contains(violation.Message, field) {
			return true
		}
	}
	return false
}

func TestValidateAcceptsMinimalDocument(t *testing.T) {
	v := newValidator(t)

	result := v.ValidateBytes([]byte(`{
		"basics": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"work": [{"company": "Analytical Engines", "position": "Engineer", "startDate": "1840-01"}]
	}`))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRejectsMissingName(t *testing.T) {
	v := newValidator(t)

	result := v.ValidateBytes([]byte(`{"basics": {"email": "ada@example.com"}}`))

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.True(t, mentions(result, "name"), "expected a violation referencing basics.name, got %v", result.Errors)
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	v := newValidator(t)

	result := v.ValidateBytes([]byte(`{"basics": {"name": "Ada Lovelace", "email": "not-an-email"}}`))

	assert.False(t, result.Valid)
	assert.True(t, mentions(result, "email"), "expected a violation referencing basics.email, got %v", result.Errors)
}

func TestValidateRejectsWrongSectionTypes(t *testing.T) {
	v := newValidator(t)

	result := v.ValidateBytes([]byte(`{
		"basics": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"work": "not an array"
	}`))

	assert.False(t, result.Valid)
	assert.True(t, mentions(result, "work"), "expected a violation referencing work, got %v", result.Errors)
}

func TestValidateNonObjectInput(t *testing.T) {
	v := newValidator(t)

	for _, raw := range []string{`"just a string"`, `42`, `[1, 2, 3]`, `null`} {
		result := v.ValidateBytes([]byte(raw))
		assert.False(t, result.Valid, "input %s should be invalid", raw)
		assert.NotEmpty(t, result.Errors, "input %s should carry a top-level violation", raw)
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	v := newValidator(t)

	result := v.ValidateBytes([]byte(`{"basics": `))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "(root)", result.Errors[0].Path)
}

func TestValidateGoValue(t *testing.T) {
	v := newValidator(t)

	result := v.Validate(map[string]interface{}{
		"basics": map[string]interface{}{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
		},
	})
	assert.True(t, result.Valid)

	result = v.Validate("not a document")
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidGuarantee(t *testing.T) {
	v := newValidator(t)

	// valid == true iff errors is empty, across a spread of inputs
	inputs := []string{
		`{"basics": {"name": "A", "email": "a@b.co"}}`,
		`{"basics": {"name": "", "email": "a@b.co"}}`,
		`{}`,
		`[]`,
	}
	for _, raw := range inputs {
		result := v.ValidateBytes([]byte(raw))
		assert.Equal(t, result.Valid, len(result.Errors) == 0, "input %s", raw)
	}
}
