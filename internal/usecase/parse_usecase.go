package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go-resume-builder/internal/domain"
	"go-resume-builder/pkg/apperror"
	"go-resume-builder/pkg/security/filecheck"
)

// ParseError reports that the structurer responded but its output was not
// valid JSON. Distinct from extraction failures so logs tell them apart.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("structurer returned invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type parseUsecase struct {
	extractor  domain.TextExtractor
	structurer domain.ResumeStructurer
}

func NewParseUsecase(extractor domain.TextExtractor, structurer domain.ResumeStructurer) domain.ParseUsecase {
	return &parseUsecase{
		extractor:  extractor,
		structurer: structurer,
	}
}

// Parse extracts text from the uploaded PDF, asks the structurer to restate
// it as a JSON Resume document, and returns the parsed object. The result
// is never persisted here; the client reviews it and submits separately.
func (u *parseUsecase) Parse(ctx context.Context, filename string, data []byte) (map[string]interface{}, error) {
	if err := filecheck.ValidatePDF(filename, data); err != nil {
		return nil, apperror.BadRequest("File must be a PDF document")
	}

	text, err := u.extractor.ExtractText(data)
	if err != nil {
		return nil, apperror.Internal("Failed to parse resume", err)
	}

	jsonStr, err := u.structurer.StructureText(ctx, text)
	if err != nil {
		return nil, apperror.Internal("Failed to parse resume", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, apperror.Internal("Failed to parse resume", &ParseError{Err: err})
	}
	return parsed, nil
}
