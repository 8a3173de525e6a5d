package history

import (
	"encoding/json"
	"errors"

	hist "mailrecon/core/history"
	"mailrecon/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunDetail is a run together with its stored result document.
type RunDetail struct {
	*hist.Run
	Result json.RawMessage `json:"result,omitempty"`
}

// Handler handles HTTP requests for run history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/schema", h.HandleSchema)
	group.Get("/:id", h.HandleGet)
}

// HandleList lists recorded runs.
// @Summary List Runs
// @Description Lists recorded reconcile runs, newest first.
// @Tags history
// @Produce json
// @Param operation query string false "Operation (dedupe, compare, merge, filter)"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {array} hist.Run "Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	opts := hist.ListOptions{
		Operation: c.Query("operation"),
		Limit:     c.QueryInt("limit", 0),
		Offset:    c.QueryInt("offset", 0),
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	runs, err := h.service.List(c.Context(), opts)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(runs)
}

// HandleGet returns one run.
// @Summary Get Run
// @Description Returns a recorded run with its matches and result document.
// @Tags history
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunDetail "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, hist.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Loading run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(RunDetail{Run: run, Result: run.Result()})
}

// HandleSchema checks the history tables.
// @Summary Check History Schema
// @Description Compares the live history tables with the expected columns and types.
// @Tags history
// @Produce json
// @Success 200 {object} hist.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	report, err := h.service.Schema()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}
