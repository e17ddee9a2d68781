// Package schema validates arbitrary JSON values against the JSON Resume
// schema and reports field-level violations.
package schema

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchemaJSON []byte

// Violation identifies a single failed expectation at a document path.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of validating one document.
// Valid is true if and only if Errors is empty.
type Result struct {
	Valid  bool        `json:"valid"`
	Errors []Violation `json:"errors"`
}

// Validator checks documents against the embedded JSON Resume schema.
// It is pure over its input and safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile resume schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateBytes validates a raw JSON payload. Malformed JSON and non-object
// values are reported as a top-level violation, never as a Go error.
func (v *Validator) ValidateBytes(raw []byte) Result {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Result{Errors: []Violation{{Path: "(root)", Message: "document is not valid JSON"}}}
	}
	return toResult(result)
}

// Validate validates an already-decoded JSON value (maps, slices, scalars).
func (v *Validator) Validate(doc interface{}) Result {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return Result{Errors: []Violation{{Path: "(root)", Message: "document could not be interpreted as JSON"}}}
	}
	return toResult(result)
}

func toResult(result *gojsonschema.Result) Result {
	if result.Valid() {
		return Result{Valid: true}
	}
	violations := make([]Violation, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, Violation{
			Path:    e.Field(),
			Message: e.Description(),
		})
	}
	return Result{Errors: violations}
}
