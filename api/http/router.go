package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ai-hr-system/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	jobs *handlers.JobHandler,
	applicants *handlers.ApplicantHandler,
	notify *handlers.NotifyHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/signup", auth.Signup)
	a.Post("/login", auth.Login)
	a.Post("/forgot-password", auth.ForgotPassword)

	// Job postings
	jg := v1.Group("/jobs", authMW)
	jg.Post("/", jobs.Create)
	jg.Get("/", jobs.List)
	jg.Get("/:id", jobs.GetByID)
	// Resume upload runs the whole evaluation pipeline
	jg.Post("/:id/applicants", applicants.UploadResume)
	jg.Get("/:id/applicants", applicants.ListByJob)

	// AI helpers and manual notifications
	ai := v1.Group("/ai", authMW)
	ai.Post("/generate-jd", jobs.GenerateDescription)
	ai.Post("/send-response", notify.SendResponse)
}
