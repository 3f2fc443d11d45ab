package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ai-hr-system/backend/api/http/presenter"
	"github.com/ai-hr-system/backend/pkg/applicant"
	"github.com/ai-hr-system/backend/pkg/job"
)

type ApplicantHandler struct {
	pipeline *applicant.Pipeline
	repo     applicant.Repository
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewApplicantHandler(pipeline *applicant.Pipeline, repo applicant.Repository) *ApplicantHandler {
	return &ApplicantHandler{pipeline: pipeline, repo: repo, maxBytes: 15 << 20} // 15MB
}

type uploadResponse struct {
	Message         string   `json:"message"`
	FitScore        float64  `json:"fit_score"`
	Summary         string   `json:"summary"`
	Education       []string `json:"education"`
	Skills          []string `json:"skills"`
	Experience      []string `json:"experience"`
	Projects        []string `json:"projects"`
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
	CandidateName   string   `json:"candidate_name"`
	CandidateEmail  string   `json:"candidate_email"`
	ApplicantID     string   `json:"applicant_id"`
}

// UploadResume accepts a resume for a job and runs the evaluation pipeline.
// The upload succeeds (201) even when extraction or evaluation degraded to
// defaults; only a missing job or a storage fault fails the request.
// @Summary Upload and evaluate a resume
// @Tags    applicants
// @Accept  multipart/form-data
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   resume formData file true "resume file (PDF or DOCX)"
// @Security BearerAuth
// @Success 201 {object} uploadResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applicants [post]
func (h *ApplicantHandler) UploadResume(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "no file uploaded")
	}
	if fh.Filename == "" {
		return presenter.Error(c, http.StatusBadRequest, "no file selected")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "file type not allowed, allowed: pdf, docx")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.pipeline.Process(c.Context(), jobID, fh.Filename, data)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("failed to upload/analyze resume: %v", err))
	}

	e := result.Evaluation
	return presenter.JSON(c, http.StatusCreated, uploadResponse{
		Message:         "Resume analyzed successfully",
		FitScore:        roundPercent(e.FitScore),
		Summary:         e.Summary,
		Education:       e.Education,
		Skills:          e.Skills,
		Experience:      e.Experience,
		Projects:        e.Projects,
		WeakAreas:       e.WeakAreas,
		Recommendations: e.Recommendations,
		CandidateName:   e.CandidateName,
		CandidateEmail:  e.CandidateEmail,
		ApplicantID:     result.ApplicantID.String(),
	})
}

// ListByJob returns the evaluations for a job, best score first.
// @Summary List applicants for a job
// @Tags    applicants
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {array} applicant.Evaluation
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applicants [get]
func (h *ApplicantHandler) ListByJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.repo.ListByJob(c.Context(), jobID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to fetch applicants")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// roundPercent converts a [0,1] score to a percentage rounded to 2 decimals.
func roundPercent(score float64) float64 {
	return math.Round(score*100*100) / 100
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
