package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elecmate/cvbuilder/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	CV     *handlers.CVHandler
	ElecID *handlers.ElecIDHandler
	Sync   *handlers.SyncHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	e := v1.Group("/elec-id", authMW)
	e.Get("/", h.ElecID.Get)
	e.Put("/", h.ElecID.Replace)

	cvs := v1.Group("/cvs", authMW)
	cvs.Get("/", h.CV.List)
	cvs.Post("/", h.CV.Create)
	// registered before /:id so "primary" is not parsed as an id
	cvs.Get("/primary", h.CV.Primary)
	cvs.Get("/:id", h.CV.Get)
	cvs.Put("/:id", h.CV.Update)
	cvs.Delete("/:id", h.CV.Delete)
	cvs.Post("/:id/primary", h.CV.SetPrimary)
	cvs.Get("/:id/completeness", h.CV.Completeness)

	s := cvs.Group("/:id/sync")
	s.Get("/status", h.Sync.Status)
	s.Get("/preview", h.Sync.Preview)
	s.Get("/import-preview", h.Sync.ImportPreview)
	s.Post("/skills", h.Sync.SyncSkills)
	s.Post("/work-history", h.Sync.ImportWorkHistory)
	s.Post("/training", h.Sync.ImportTraining)
	s.Post("/import", h.Sync.ImportAll)
}
