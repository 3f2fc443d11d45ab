package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ai-hr-system/backend/api/http/presenter"
	"github.com/ai-hr-system/backend/pkg/job"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

type createJobRequest struct {
	Title       string   `json:"title"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	Experience  string   `json:"experience"`
}

// Create posts a new job on behalf of the authenticated HR account.
// @Summary Create a job posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job payload"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	hrEmail, _ := c.Locals("userEmail").(string)
	if hrEmail == "" {
		return presenter.Error(c, http.StatusUnauthorized, "could not resolve the acting user")
	}

	j, err := h.uc.Create(c.Context(), job.Job{
		Title:       req.Title,
		Skills:      req.Skills,
		Description: req.Description,
		Experience:  req.Experience,
		CreatedBy:   hrEmail,
	})
	if err != nil {
		if errors.Is(err, job.ErrHRNotFound) {
			return presenter.Error(c, http.StatusNotFound, "hr account not found")
		}
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message":      "Job created successfully",
		"job_id":       j.ID.String(),
		"company_name": j.CompanyName,
	})
}

// List returns job postings, newest first.
// @Summary List job postings
// @Tags    jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Job
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	jobs, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to fetch jobs")
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// GetByID returns one job posting.
// @Summary Get a job posting
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	j, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type generateJDRequest struct {
	Title      string `json:"title"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

// GenerateDescription produces a plain-text job description with the model.
// @Summary Generate a job description
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body generateJDRequest true "title, skills and experience"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /ai/generate-jd [post]
func (h *JobHandler) GenerateDescription(c *fiber.Ctx) error {
	var req generateJDRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	var validationErr job.ErrValidation
	text, err := h.uc.GenerateDescription(c.Context(), req.Title, req.Skills, req.Experience)
	if err != nil {
		if errors.As(err, &validationErr) {
			return presenter.Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"description": text})
}
