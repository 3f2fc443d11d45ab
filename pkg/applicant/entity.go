package applicant

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Evaluation is the stored outcome of one resume upload: the extracted text
// plus the AI screening against the job description. Created once per upload,
// never mutated. FitScore is a fraction in [0,1].
type Evaluation struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	Filename        string    `json:"filename"`
	ResumeText      string    `json:"resume_text"`
	FitScore        float64   `json:"fit_score"`
	Summary         string    `json:"summary"`
	Education       []string  `json:"education"`
	Skills          []string  `json:"skills"`
	Experience      []string  `json:"experience"`
	Projects        []string  `json:"projects"`
	WeakAreas       []string  `json:"weak_areas"`
	Recommendations []string  `json:"recommendations"`
	CandidateName   string    `json:"candidate_name"`
	CandidateEmail  string    `json:"candidate_email"`
	CreatedAt       time.Time `json:"created_at"`
}

// Repository is the persistence port for applicant evaluations.
// Insert failures are storage faults and abort the request.
type Repository interface {
	Insert(ctx context.Context, e Evaluation) (uuid.UUID, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Evaluation, error)
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// FindEmail returns the first email-shaped substring in text, or "".
// Used as a fallback when the model did not extract a candidate email.
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}
