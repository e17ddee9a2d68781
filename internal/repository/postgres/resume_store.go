package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go-resume-builder/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResumeStore maps resume documents onto a parent table with flattened
// basics columns plus seven child tables keyed back to the parent. Leaf
// string arrays (highlights, keywords, courses, roles) are serialized into
// a single text column per child row.
type ResumeStore struct {
	db *pgxpool.Pool
}

func NewResumeStore(db *pgxpool.Pool) *ResumeStore {
	return &ResumeStore{db: db}
}

// Create persists the whole document in a single transaction. Either the
// parent row and every child row land together or nothing is written.
// Generated child-row ids are filled into the returned document.
func (r *ResumeStore) Create(ctx context.Context, doc *domain.ResumeDocument) (string, *domain.ResumeDocument, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", nil, err
	}
	defer tx.Rollback(ctx)

	var locAddress, locPostalCode, locCity, locRegion, locCountry string
	if doc.Basics.Location != nil {
		locAddress = doc.Basics.Location.Address
		locPostalCode = doc.Basics.Location.PostalCode
		locCity = doc.Basics.Location.City
		locRegion = doc.Basics.Location.Region
		locCountry = doc.Basics.Location.Country
	}

	profiles, err := marshalJSONColumn(doc.Basics.Profiles)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode profiles: %w", err)
	}

	var metaVersion, metaCanonical string
	if doc.Meta != nil {
		metaVersion = doc.Meta.Version
		metaCanonical = doc.Meta.Canonical
	}

	insertResume := `
		INSERT INTO resumes (
			schema_url, name, label, email, phone, url, summary,
			location_address, location_postal_code, location_city, location_region, location_country,
			profiles, meta_version, meta_canonical, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id`

	var resumeID int64
	err = tx.QueryRow(ctx, insertResume,
		doc.Schema, doc.Basics.Name, doc.Basics.Label, doc.Basics.Email,
		doc.Basics.Phone, doc.Basics.URL, doc.Basics.Summary,
		locAddress, locPostalCode, locCity, locRegion, locCountry,
		profiles, metaVersion, metaCanonical,
	).Scan(&resumeID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to insert resume: %w", err)
	}

	stored := *doc
	stored.Work = append([]domain.WorkEntry(nil), doc.Work...)
	stored.Education = append([]domain.EducationEntry(nil), doc.Education...)
	stored.Skills = append([]domain.SkillEntry(nil), doc.Skills...)
	stored.Languages = append([]domain.LanguageEntry(nil), doc.Languages...)
	stored.Projects = append([]domain.ProjectEntry(nil), doc.Projects...)
	stored.Certificates = append([]domain.CertificateEntry(nil), doc.Certificates...)
	stored.Awards = append([]domain.AwardEntry(nil), doc.Awards...)

	workInsert := `
		INSERT INTO work_entries (resume_id, sort_order, name, company, position, url, start_date, end_date, summary, highlights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	for i := range stored.Work {
		w := &stored.Work[i]
		highlights, err := marshalJSONColumn(w.Highlights)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode highlights: %w", err)
		}
		err = tx.QueryRow(ctx, workInsert,
			resumeID, i, w.Name, w.Company, w.Position, w.URL, w.StartDate, w.EndDate, w.Summary, highlights,
		).Scan(&w.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert work entry: %w", err)
		}
	}

	eduInsert := `
		INSERT INTO education_entries (resume_id, sort_order, institution, url, area, study_type, start_date, end_date, score, courses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	for i := range stored.Education {
		e := &stored.Education[i]
		courses, err := marshalJSONColumn(e.Courses)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode courses: %w", err)
		}
		err = tx.QueryRow(ctx, eduInsert,
			resumeID, i, e.Institution, e.URL, e.Area, e.StudyType, e.StartDate, e.EndDate, e.Score, courses,
		).Scan(&e.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert education entry: %w", err)
		}
	}

	skillInsert := `
		INSERT INTO skills (resume_id, sort_order, name, level, keywords)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range stored.Skills {
		s := &stored.Skills[i]
		keywords, err := marshalJSONColumn(s.Keywords)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode keywords: %w", err)
		}
		err = tx.QueryRow(ctx, skillInsert, resumeID, i, s.Name, s.Level, keywords).Scan(&s.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert skill: %w", err)
		}
	}

	langInsert := `
		INSERT INTO languages (resume_id, sort_order, language, fluency)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range stored.Languages {
		l := &stored.Languages[i]
		err = tx.QueryRow(ctx, langInsert, resumeID, i, l.Language, l.Fluency).Scan(&l.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert language: %w", err)
		}
	}

	projectInsert := `
		INSERT INTO projects (resume_id, sort_order, name, description, highlights, keywords, start_date, end_date, url, roles, entity, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	for i := range stored.Projects {
		p := &stored.Projects[i]
		highlights, err := marshalJSONColumn(p.Highlights)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode project highlights: %w", err)
		}
		keywords, err := marshalJSONColumn(p.Keywords)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode project keywords: %w", err)
		}
		roles, err := marshalJSONColumn(p.Roles)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode project roles: %w", err)
		}
		err = tx.QueryRow(ctx, projectInsert,
			resumeID, i, p.Name, p.Description, highlights, keywords,
			p.StartDate, p.EndDate, p.URL, roles, p.Entity, p.Type,
		).Scan(&p.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert project: %w", err)
		}
	}

	certInsert := `
		INSERT INTO certificates (resume_id, sort_order, name, date, issuer, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range stored.Certificates {
		c := &stored.Certificates[i]
		err = tx.QueryRow(ctx, certInsert, resumeID, i, c.Name, c.Date, c.Issuer, c.URL).Scan(&c.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert certificate: %w", err)
		}
	}

	awardInsert := `
		INSERT INTO awards (resume_id, sort_order, title, date, awarder, summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range stored.Awards {
		a := &stored.Awards[i]
		err = tx.QueryRow(ctx, awardInsert, resumeID, i, a.Title, a.Date, a.Awarder, a.Summary).Scan(&a.ID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to insert award: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, err
	}

	return strconv.FormatInt(resumeID, 10), &stored, nil
}

// GetByID reconstructs the nested document from the parent row and its
// children, in insertion order. Returns (nil, nil) for unknown ids.
func (r *ResumeStore) GetByID(ctx context.Context, id string) (*domain.ResumeDocument, error) {
	resumeID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	query := `
		SELECT schema_url, name, label, email, phone, url, summary,
		       location_address, location_postal_code, location_city, location_region, location_country,
		       COALESCE(profiles, ''), meta_version, meta_canonical
		FROM resumes WHERE id = $1`

	var doc domain.ResumeDocument
	var loc domain.Location
	var profiles string
	var metaVersion, metaCanonical string

	err = r.db.QueryRow(ctx, query, resumeID).Scan(
		&doc.Schema, &doc.Basics.Name, &doc.Basics.Label, &doc.Basics.Email,
		&doc.Basics.Phone, &doc.Basics.URL, &doc.Basics.Summary,
		&loc.Address, &loc.PostalCode, &loc.City, &loc.Region, &loc.Country,
		&profiles, &metaVersion, &metaCanonical,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if loc != (domain.Location{}) {
		doc.Basics.Location = &loc
	}
	if profiles != "" {
		if err := json.Unmarshal([]byte(profiles), &doc.Basics.Profiles); err != nil {
			return nil, fmt.Errorf("failed to decode profiles: %w", err)
		}
	}
	if metaVersion != "" || metaCanonical != "" {
		doc.Meta = &domain.Meta{Version: metaVersion, Canonical: metaCanonical}
	}

	if err := r.loadChildren(ctx, resumeID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns every stored document ordered by creation time.
func (r *ResumeStore) List(ctx context.Context) ([]domain.ResumeDocument, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM resumes ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docs := make([]domain.ResumeDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := r.GetByID(ctx, strconv.FormatInt(id, 10))
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (r *ResumeStore) loadChildren(ctx context.Context, resumeID int64, doc *domain.ResumeDocument) error {
	workQuery := `
		SELECT id, name, company, position, url, start_date, end_date, summary, COALESCE(highlights, '')
		FROM work_entries WHERE resume_id = $1 ORDER BY sort_order`
	rows, err := r.db.Query(ctx, workQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch work entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w domain.WorkEntry
		var highlights string
		if err := rows.Scan(&w.ID, &w.Name, &w.Company, &w.Position, &w.URL, &w.StartDate, &w.EndDate, &w.Summary, &highlights); err != nil {
			return err
		}
		if w.Highlights, err = unmarshalJSONColumn(highlights); err != nil {
			return fmt.Errorf("failed to decode highlights: %w", err)
		}
		doc.Work = append(doc.Work, w)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduQuery := `
		SELECT id, institution, url, area, study_type, start_date, end_date, score, COALESCE(courses, '')
		FROM education_entries WHERE resume_id = $1 ORDER BY sort_order`
	eduRows, err := r.db.Query(ctx, eduQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch education entries: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e domain.EducationEntry
		var courses string
		if err := eduRows.Scan(&e.ID, &e.Institution, &e.URL, &e.Area, &e.StudyType, &e.StartDate, &e.EndDate, &e.Score, &courses); err != nil {
			return err
		}
		if e.Courses, err = unmarshalJSONColumn(courses); err != nil {
			return fmt.Errorf("failed to decode courses: %w", err)
		}
		doc.Education = append(doc.Education, e)
	}
	if err := eduRows.Err(); err != nil {
		return err
	}

	skillQuery := `
		SELECT id, name, level, COALESCE(keywords, '')
		FROM skills WHERE resume_id = $1 ORDER BY sort_order`
	skillRows, err := r.db.Query(ctx, skillQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s domain.SkillEntry
		var keywords string
		if err := skillRows.Scan(&s.ID, &s.Name, &s.Level, &keywords); err != nil {
			return err
		}
		if s.Keywords, err = unmarshalJSONColumn(keywords); err != nil {
			return fmt.Errorf("failed to decode keywords: %w", err)
		}
		doc.Skills = append(doc.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return err
	}

	langQuery := `
		SELECT id, language, fluency
		FROM languages WHERE resume_id = $1 ORDER BY sort_order`
	langRows, err := r.db.Query(ctx, langQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch languages: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var l domain.LanguageEntry
		if err := langRows.Scan(&l.ID, &l.Language, &l.Fluency); err != nil {
			return err
		}
		doc.Languages = append(doc.Languages, l)
	}
	if err := langRows.Err(); err != nil {
		return err
	}

	projectQuery := `
		SELECT id, name, description, COALESCE(highlights, ''), COALESCE(keywords, ''),
		       start_date, end_date, url, COALESCE(roles, ''), entity, type
		FROM projects WHERE resume_id = $1 ORDER BY sort_order`
	projectRows, err := r.db.Query(ctx, projectQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer projectRows.Close()
	for projectRows.Next() {
		var p domain.ProjectEntry
		var highlights, keywords, roles string
		if err := projectRows.Scan(&p.ID, &p.Name, &p.Description, &highlights, &keywords,
			&p.StartDate, &p.EndDate, &p.URL, &roles, &p.Entity, &p.Type); err != nil {
			return err
		}
		if p.Highlights, err = unmarshalJSONColumn(highlights); err != nil {
			return fmt.Errorf("failed to decode project highlights: %w", err)
		}
		if p.Keywords, err = unmarshalJSONColumn(keywords); err != nil {
			return fmt.Errorf("failed to decode project keywords: %w", err)
		}
		if p.Roles, err = unmarshalJSONColumn(roles); err != nil {
			return fmt.Errorf("failed to decode project roles: %w", err)
		}
		doc.Projects = append(doc.Projects, p)
	}
	if err := projectRows.Err(); err != nil {
		return err
	}

	certQuery := `
		SELECT id, name, date, issuer, url
		FROM certificates WHERE resume_id = $1 ORDER BY sort_order`
	certRows, err := r.db.Query(ctx, certQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer certRows.Close()
	for certRows.Next() {
		var c domain.CertificateEntry
		if err := certRows.Scan(&c.ID, &c.Name, &c.Date, &c.Issuer, &c.URL); err != nil {
			return err
		}
		doc.Certificates = append(doc.Certificates, c)
	}
	if err := certRows.Err(); err != nil {
		return err
	}

	awardQuery := `
		SELECT id, title, date, awarder, summary
		FROM awards WHERE resume_id = $1 ORDER BY sort_order`
	awardRows, err := r.db.Query(ctx, awardQuery, resumeID)
	if err != nil {
		return fmt.Errorf("failed to fetch awards: %w", err)
	}
	defer awardRows.Close()
	for awardRows.Next() {
		var a domain.AwardEntry
		if err := awardRows.Scan(&a.ID, &a.Title, &a.Date, &a.Awarder, &a.Summary); err != nil {
			return err
		}
		doc.Awards = append(doc.Awards, a)
	}
	return awardRows.Err()
}

// marshalJSONColumn serializes a leaf value into the single text column the
// schema models it as. Empty values are stored as NULL.
func marshalJSONColumn(v interface{}) (*string, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil, nil
		}
	case []domain.Profile:
		if len(t) == 0 {
			return nil, nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func unmarshalJSONColumn(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
