package health

import (
	"mailrecon/core/logger"

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
	group := app.Group("/health")
	group.Get("/", h.HandleCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Post("/storage", h.HandleStorageFix)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleCheck runs every check.
// @Summary Run All Health Checks
// @Description Checks the report bucket and the run history schema.
// @Tags health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router /health [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	rep := h.service.Check(c.Context())
	if !rep.Healthy {
		logger.WithRayID(h.service.logger, c).Warn("Health check failed",
			zap.String("storage", rep.Storage.Status),
			zap.String("database", rep.Database.Status),
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(rep)
	}
	return c.JSON(rep)
}

// HandleStorageCheck checks the report bucket.
// @Summary Check Storage
// @Description Verifies that the configured bucket exists.
// @Tags health
// @Produce json
// @Success 200 {object} health.StorageReport
// @Failure 503 {object} health.StorageReport
// @Router /health/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	rep := h.service.CheckStorage(c.Context())
	if rep.Status != StatusOK {
		return c.Status(fiber.StatusServiceUnavailable).JSON(rep)
	}
	return c.JSON(rep)
}

// HandleStorageFix creates the bucket.
// @Summary Fix Storage
// @Description Creates the configured bucket when it is missing.
// @Tags health
// @Produce json
// @Success 200 {object} health.StorageReport
// @Failure 500 {object} map[string]string
// @Router /health/storage [post]
func (h *Handler) HandleStorageFix(c *fiber.Ctx) error {
	if err := h.service.FixStorage(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.CheckStorage(c.Context()))
}

// HandleDatabaseCheck checks the history tables.
// @Summary Check Database
// @Description Compares the run history tables with the expected columns.
// @Tags health
// @Produce json
// @Success 200 {object} health.DatabaseReport
// @Failure 503 {object} health.DatabaseReport
// @Router /health/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	rep := h.service.CheckDatabase()
	if rep.Status == StatusError {
		return c.Status(fiber.StatusServiceUnavailable).JSON(rep)
	}
	return c.JSON(rep)
}
