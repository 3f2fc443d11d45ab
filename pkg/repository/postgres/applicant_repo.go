package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ai-hr-system/backend/pkg/applicant"
)

// ApplicantRepository stores applicant evaluations. The list fields share one
// JSONB column since they are only ever read back as a unit.
type ApplicantRepository struct {
	pool *pgxpool.Pool
}

func NewApplicantRepository(pool *pgxpool.Pool) (*ApplicantRepository, error) {
	r := &ApplicantRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicantRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applicants (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL,
	filename TEXT NOT NULL,
	resume_text TEXT NOT NULL,
	fit_score DOUBLE PRECISION NOT NULL CHECK (fit_score >= 0 AND fit_score <= 1),
	summary TEXT NOT NULL,
	details JSONB NOT NULL,
	candidate_name TEXT NOT NULL DEFAULT '',
	candidate_email TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applicants_job ON applicants(job_id);
`)
	return err
}

// evaluationDetails groups the list fields for the JSONB column.
type evaluationDetails struct {
	Education       []string `json:"education"`
	Skills          []string `json:"skills"`
	Experience      []string `json:"experience"`
	Projects        []string `json:"projects"`
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
}

func (r *ApplicantRepository) Insert(ctx context.Context, e applicant.Evaluation) (uuid.UUID, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	details, err := json.Marshal(evaluationDetails{
		Education:       e.Education,
		Skills:          e.Skills,
		Experience:      e.Experience,
		Projects:        e.Projects,
		WeakAreas:       e.WeakAreas,
		Recommendations: e.Recommendations,
	})
	if err != nil {
		return uuid.Nil, err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO applicants (id, job_id, filename, resume_text, fit_score, summary, details, candidate_name, candidate_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, e.ID, e.JobID, e.Filename, e.ResumeText, e.FitScore, e.Summary, details, e.CandidateName, e.CandidateEmail, e.CreatedAt)
	if err != nil {
		return uuid.Nil, err
	}
	return e.ID, nil
}

func (r *ApplicantRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]applicant.Evaluation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, job_id, filename, resume_text, fit_score, summary, details, candidate_name, candidate_email, created_at
FROM applicants WHERE job_id = $1 ORDER BY fit_score DESC, created_at DESC LIMIT $2 OFFSET $3
`, jobID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]applicant.Evaluation, 0)
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvaluation(row pgx.Row) (applicant.Evaluation, error) {
	var e applicant.Evaluation
	var detailsBytes []byte
	var created time.Time
	if err := row.Scan(&e.ID, &e.JobID, &e.Filename, &e.ResumeText, &e.FitScore, &e.Summary, &detailsBytes, &e.CandidateName, &e.CandidateEmail, &created); err != nil {
		return applicant.Evaluation{}, err
	}
	var d evaluationDetails
	_ = json.Unmarshal(detailsBytes, &d)
	e.Education = orEmpty(d.Education)
	e.Skills = orEmpty(d.Skills)
	e.Experience = orEmpty(d.Experience)
	e.Projects = orEmpty(d.Projects)
	e.WeakAreas = orEmpty(d.WeakAreas)
	e.Recommendations = orEmpty(d.Recommendations)
	e.CreatedAt = created.UTC()
	return e, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
