package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ai-hr-system/backend/pkg/job"
)

// JobRepository stores job postings.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	skills TEXT[] NOT NULL DEFAULT '{}',
	description TEXT NOT NULL,
	experience TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL,
	company_name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at DESC);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, title, skills, description, experience, created_by, company_name, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, j.ID, j.Title, j.Skills, j.Description, j.Experience, j.CreatedBy, j.CompanyName, j.CreatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, skills, description, experience, created_by, company_name, created_at
FROM jobs WHERE id = $1
`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, skills, description, experience, created_by, company_name, created_at
FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var created time.Time
	if err := row.Scan(&j.ID, &j.Title, &j.Skills, &j.Description, &j.Experience, &j.CreatedBy, &j.CompanyName, &created); err != nil {
		return job.Job{}, err
	}
	j.CreatedAt = created.UTC()
	if j.Skills == nil {
		j.Skills = []string{}
	}
	return j, nil
}
