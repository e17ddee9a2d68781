package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-resume-builder/internal/domain"
	"go-resume-builder/internal/schema"
	"go-resume-builder/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type resumeUsecase struct {
	store    domain.ResumeStore
	schema   *schema.Validator
	validate *validator.Validate
}

func NewResumeUsecase(store domain.ResumeStore, schemaValidator *schema.Validator, validate *validator.Validate) domain.ResumeUsecase {
	return &resumeUsecase{
		store:    store,
		schema:   schemaValidator,
		validate: validate,
	}
}

// Create validates the raw payload against the JSON Resume schema, then
// against the structural rules the create form enforces, and persists it.
// Nothing is written when either validation fails.
func (u *resumeUsecase) Create(ctx context.Context, raw []byte) (string, *domain.ResumeDocument, error) {
	result := u.schema.ValidateBytes(raw)
	if !result.Valid {
		return "", nil, apperror.Validation("Invalid resume format", result.Errors)
	}

	var doc domain.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Schema validation passed, so the payload is a JSON object; a
		// decode failure here means a field had an unexpected shape.
		return "", nil, apperror.Validation("Invalid resume format", []schema.Violation{
			{Path: "(root)", Message: err.Error()},
		})
	}

	if err := u.validate.Struct(&doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return "", nil, apperror.Validation("Invalid resume format", violationsFromFieldErrors(fieldErrs))
		}
		return "", nil, apperror.Internal("Failed to save resume", err)
	}

	id, stored, err := u.store.Create(ctx, &doc)
	if err != nil {
		return "", nil, apperror.Internal("Failed to save resume", err)
	}
	return id, stored, nil
}

func (u *resumeUsecase) GetByID(ctx context.Context, id string) (*domain.ResumeDocument, error) {
	doc, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to retrieve resume(s)", err)
	}
	if doc == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	return doc, nil
}

func (u *resumeUsecase) List(ctx context.Context) ([]domain.ResumeDocument, error) {
	docs, err := u.store.List(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to retrieve resume(s)", err)
	}
	if docs == nil {
		docs = []domain.ResumeDocument{}
	}
	return docs, nil
}

// violationsFromFieldErrors flattens validator field errors into the same
// shape schema violations use, so the 400 body stays uniform.
func violationsFromFieldErrors(fieldErrs validator.ValidationErrors) []schema.Violation {
	violations := make([]schema.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, schema.Violation{
			Path:    fe.Namespace(),
			Message: fmt.Sprintf("failed '%s' validation", fe.Tag()),
		})
	}
	return violations
}
