package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ai-hr-system/backend/pkg/auth"
	"github.com/ai-hr-system/backend/pkg/llm"
)

// UseCase covers job posting scenarios.
type UseCase interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	GenerateDescription(ctx context.Context, title, skills, experience string) (string, error)
}

type service struct {
	repo  Repository
	users auth.UserRepository
	llm   llm.ChatModel
}

func NewService(repo Repository, users auth.UserRepository, model llm.ChatModel) UseCase {
	return &service{repo: repo, users: users, llm: model}
}

func (s *service) Create(ctx context.Context, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" || strings.TrimSpace(j.Description) == "" || len(j.Skills) == 0 {
		return Job{}, ErrValidation("title, skills and description are required")
	}
	// Job must belong to a known HR account; its company name is denormalized
	// into the posting for notification personalization.
	hr, err := s.users.GetByEmail(ctx, j.CreatedBy)
	if err != nil {
		return Job{}, ErrHRNotFound
	}
	j.CompanyName = hr.CompanyName
	if j.CompanyName == "" {
		j.CompanyName = "Our Company"
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.repo.List(ctx, limit, offset)
}

// GenerateDescription asks the model for a plain-text job description.
// Unlike the resume pipeline this path is not degraded: the caller wants the
// text or an error.
func (s *service) GenerateDescription(ctx context.Context, title, skills, experience string) (string, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(skills) == "" || strings.TrimSpace(experience) == "" {
		return "", ErrValidation("title, skills and experience are required")
	}
	system := "You are an HR assistant that writes job descriptions. Return plain text only."
	user := fmt.Sprintf(
		"Generate a professional plain-text job description for %s. "+
			"Include Job Summary, Responsibilities, and Requirements. "+
			"Required skills: %s. Expected experience: %s. "+
			"Return plain text only.",
		title, skills, experience,
	)
	text, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("job description generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
