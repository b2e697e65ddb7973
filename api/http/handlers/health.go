package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/elecmate/cvbuilder/api/http/presenter"
	"github.com/elecmate/cvbuilder/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

// Health: liveness, no dependencies touched.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// Ready: readiness with a per-dependency report (postgres, redis).
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	report := h.svc.Report(ctx)
	status := fiber.StatusOK
	if !report.Ready {
		status = fiber.StatusServiceUnavailable
	}
	return presenter.JSON(c, status, report)
}
