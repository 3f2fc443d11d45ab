package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ai-hr-system/backend/api/http/presenter"
	"github.com/ai-hr-system/backend/pkg/mailer"
)

// NotifyHandler serves manually triggered candidate emails. Unlike the
// pipeline's automatic decision mail, these sends retry and report failure
// to the caller.
type NotifyHandler struct {
	mail            *mailer.Service
	awardPercentage float64
}

func NewNotifyHandler(mail *mailer.Service, threshold float64) *NotifyHandler {
	return &NotifyHandler{mail: mail, awardPercentage: threshold * 100}
}

type sendResponseRequest struct {
	Email         string   `json:"email"`
	FitScore      *float64 `json:"fit_score"`
	Name          string   `json:"name"`
	InterviewDate string   `json:"interview_date"`
	InterviewTime string   `json:"interview_time"`
}

// SendResponse mails an interview invitation (score above the award cutoff)
// or an application update to a candidate, at HR's request.
// @Summary Send an interview invitation or application update
// @Tags    notifications
// @Accept  json
// @Produce json
// @Param   input body sendResponseRequest true "candidate email, fit score and interview slot"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /ai/send-response [post]
func (h *NotifyHandler) SendResponse(c *fiber.Ctx) error {
	var req sendResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.FitScore == nil {
		return presenter.Error(c, http.StatusBadRequest, "missing email or fit score")
	}
	name := req.Name
	if name == "" {
		name = "Candidate"
	}

	var subject, body string
	if *req.FitScore > h.awardPercentage {
		subject = "Interview Invitation - AI HR System"
		body = fmt.Sprintf(
			"Dear %s,\n\nCongratulations! Your profile has been shortlisted with a Fit Score of %.2f.\n\n"+
				"We'd like to invite you for an interview on:\nDate: %s\nTime: %s\n\n"+
				"Please confirm your availability by replying to this email.\n\nBest regards,\nHR Team",
			name, *req.FitScore, req.InterviewDate, req.InterviewTime,
		)
	} else {
		subject = "Your Application Update - AI HR System"
		body = fmt.Sprintf(
			"Dear %s,\n\nThank you for applying. Your profile scored %.2f in our screening.\n"+
				"We appreciate your interest and encourage you to apply for future opportunities.\n\nBest regards,\nHR Team",
			name, *req.FitScore,
		)
	}

	if err := h.mail.Send(c.Context(), mailer.Message{To: req.Email, Subject: subject, Body: body}); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("email sending failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "email sent successfully"})
}
