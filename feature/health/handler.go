package health

import (
	"scene-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealthCheck)
}

// HandleHealthCheck checks the database, the scenes schema and the files bucket.
// @Summary Health Check
// @Description Checks database reachability, the scenes table schema and the files bucket. Optionally migrates the table and creates the bucket.
// @Tags health
// @Produce json
// @Param fix query boolean false "Migrate schema and create bucket"
// @Success 200 {object} Report "Healthy"
// @Failure 503 {object} Report "Unhealthy"
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report := h.service.Check(c.UserContext(), fix)
	if !report.Healthy {
		l.Warn("Health check failed",
			zap.String("database", report.Database.Status),
			zap.String("schema", report.Schema.Status),
			zap.String("storage", report.Storage.Status))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}

	return c.JSON(report)
}
