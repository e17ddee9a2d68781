package domain

import (
	"context"
)

// ResumeDocument is the canonical resume entity, shaped per the JSON Resume
// schema. A document is created once, read many times, and never updated in
// place. The validate tags mirror the structural rules the create form
// enforces; full schema validation happens separately in internal/schema.
type ResumeDocument struct {
	Schema       string             `json:"$schema,omitempty"`
	Basics       Basics             `json:"basics" validate:"required"`
	Work         []WorkEntry        `json:"work,omitempty" validate:"omitempty,dive"`
	Education    []EducationEntry   `json:"education,omitempty" validate:"omitempty,dive"`
	Skills       []SkillEntry       `json:"skills,omitempty"`
	Languages    []LanguageEntry    `json:"languages,omitempty"`
	Projects     []ProjectEntry     `json:"projects,omitempty"`
	Certificates []CertificateEntry `json:"certificates,omitempty"`
	Awards       []AwardEntry       `json:"awards,omitempty"`
	Meta         *Meta              `json:"meta,omitempty"`
}

type Basics struct {
	Name     string    `json:"name" validate:"required"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone,omitempty"`
	URL      string    `json:"url,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

type Location struct {
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country,omitempty"`
}

type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// WorkEntry accepts both "name" (JSON Resume) and "company" (create form);
// the stored document keeps whichever key the client sent.
type WorkEntry struct {
	ID         int64    `json:"id,omitempty"`
	Name       string   `json:"name,omitempty" validate:"required_without=Company"`
	Company    string   `json:"company,omitempty" validate:"required_without=Name"`
	Position   string   `json:"position" validate:"required"`
	URL        string   `json:"url,omitempty"`
	StartDate  string   `json:"startDate" validate:"required"`
	EndDate    string   `json:"endDate,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

type EducationEntry struct {
	ID          int64    `json:"id,omitempty"`
	Institution string   `json:"institution" validate:"required"`
	URL         string   `json:"url,omitempty"`
	Area        string   `json:"area" validate:"required"`
	StudyType   string   `json:"studyType" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate,omitempty"`
	Score       string   `json:"score,omitempty"`
	Courses     []string `json:"courses,omitempty"`
}

type SkillEntry struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Level    string   `json:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

type LanguageEntry struct {
	ID       int64  `json:"id,omitempty"`
	Language string `json:"language,omitempty"`
	Fluency  string `json:"fluency,omitempty"`
}

type ProjectEntry struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	URL         string   `json:"url,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Entity      string   `json:"entity,omitempty"`
	Type        string   `json:"type,omitempty"`
}

type CertificateEntry struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Date   string `json:"date,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	URL    string `json:"url,omitempty"`
}

type AwardEntry struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Date    string `json:"date,omitempty"`
	Awarder string `json:"awarder,omitempty"`
	Summary string `json:"summary,omitempty"`
}

type Meta struct {
	Version   string `json:"version,omitempty"`
	Canonical string `json:"canonical,omitempty"`
}

// ResumeStore is the storage contract shared by the memory and postgres
// backends. Documents handed to Create have already passed schema
// validation. GetByID returns (nil, nil) when the id is unknown.
type ResumeStore interface {
	Create(ctx context.Context, doc *ResumeDocument) (string, *ResumeDocument, error)
	GetByID(ctx context.Context, id string) (*ResumeDocument, error)
	List(ctx context.Context) ([]ResumeDocument, error)
}

// TextExtractor turns uploaded PDF bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// ResumeStructurer turns extracted resume text into a JSON string that is
// expected (but not guaranteed) to follow the JSON Resume schema.
type ResumeStructurer interface {
	StructureText(ctx context.Context, text string) (string, error)
}

type ResumeUsecase interface {
	Create(ctx context.Context, raw []byte) (string, *ResumeDocument, error)
	GetByID(ctx context.Context, id string) (*ResumeDocument, error)
	List(ctx context.Context) ([]ResumeDocument, error)
}

type ParseUsecase interface {
	Parse(ctx context.Context, filename string, data []byte) (map[string]interface{}, error)
}
