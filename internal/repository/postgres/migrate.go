package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the resume tables if they do not exist yet. It is safe to
// run on every startup.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id BIGSERIAL PRIMARY KEY,
			schema_url TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			location_address TEXT NOT NULL DEFAULT '',
			location_postal_code TEXT NOT NULL DEFAULT '',
			location_city TEXT NOT NULL DEFAULT '',
			location_region TEXT NOT NULL DEFAULT '',
			location_country TEXT NOT NULL DEFAULT '',
			profiles TEXT,
			meta_version TEXT NOT NULL DEFAULT '',
			meta_canonical TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS work_entries (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			highlights TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS education_entries (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			institution TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			area TEXT NOT NULL DEFAULT '',
			study_type TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			score TEXT NOT NULL DEFAULT '',
			courses TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS skills (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT '',
			keywords TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS languages (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			fluency TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			highlights TEXT,
			keywords TEXT,
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			roles TEXT,
			entity TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS certificates (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			issuer TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS awards (
			id BIGSERIAL PRIMARY KEY,
			resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			sort_order INT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			awarder TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_entries_resume_id ON work_entries(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_education_entries_resume_id ON education_entries(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_skills_resume_id ON skills(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_languages_resume_id ON languages(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_resume_id ON projects(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_certificates_resume_id ON certificates(resume_id)`,
		`CREATE INDEX IF NOT EXISTS idx_awards_resume_id ON awards(resume_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
