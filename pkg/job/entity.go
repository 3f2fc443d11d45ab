package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Job is a posting created by an HR account. CompanyName is denormalized from
// the creator so candidate-facing emails stay correct even if the account
// changes later. Jobs are immutable after creation.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Skills      []string  `json:"skills"`
	Description string    `json:"description"`
	Experience  string    `json:"experience"`
	CreatedBy   string    `json:"createdBy"`
	CompanyName string    `json:"companyName"`
	CreatedAt   time.Time `json:"createdAt"`
}

var (
	ErrNotFound   = errors.New("job not found")
	ErrHRNotFound = errors.New("hr account not found")
)

// Repository is the persistence port for job postings.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
}
