package reconcile

import (
	"errors"

	"mailrecon/core/logger"
	engine "mailrecon/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunIDHeader carries the history id of a recorded run.
const RunIDHeader = "X-Run-ID"

// Handler handles HTTP requests for reconcile operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/dedupe", h.HandleDedupe)
	group.Post("/compare", h.HandleCompare)
	group.Post("/merge", h.HandleMerge)
	group.Post("/filter", h.HandleFilter)
}

// HandleDedupe removes duplicates inside one mailbox.
// @Summary Deduplicate Mailbox
// @Description Partitions one mailbox into unique and duplicate records. Records come from a source location or inline.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body DedupeRequest true "Mailbox and match options"
// @Success 200 {object} engine.DedupeResult "Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} engine.DedupeResult "Rejected run"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/dedupe [post]
func (h *Handler) HandleDedupe(c *fiber.Ctx) error {
	var req DedupeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	l := logger.WithRayID(h.service.logger, c)
	res, runID, err := h.service.Dedupe(c.Context(), req, logger.Progress(l))
	if err != nil {
		return fail(c, l, "dedupe", err)
	}
	return respond(c, runID, res.Outcome, res)
}

// HandleCompare compares two mailboxes.
// @Summary Compare Mailboxes
// @Description Classifies mailbox A against mailbox B into common, unique to A and unique to B.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Mailboxes and match options"
// @Success 200 {object} engine.CompareResult "Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} engine.CompareResult "Rejected run"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	l := logger.WithRayID(h.service.logger, c)
	res, runID, err := h.service.Compare(c.Context(), req, logger.Progress(l))
	if err != nil {
		return fail(c, l, "compare", err)
	}
	return respond(c, runID, res.Outcome, res)
}

// HandleMerge merges several mailboxes.
// @Summary Merge Mailboxes
// @Description Unions mailboxes in the given order, optionally removing cross-mailbox duplicates.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body MergeRequest true "Collections and match options"
// @Success 200 {object} engine.MergeResult "Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} engine.MergeResult "Rejected run"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	var req MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	l := logger.WithRayID(h.service.logger, c)
	res, runID, err := h.service.Merge(c.Context(), req, logger.Progress(l))
	if err != nil {
		return fail(c, l, "merge", err)
	}
	return respond(c, runID, res.Outcome, res)
}

// HandleFilter filters a mailbox by sender and recipient.
// @Summary Filter Mailbox
// @Description Partitions one mailbox into records matching the address criteria and the rest.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Mailbox and criteria"
// @Success 200 {object} engine.FilterResult "Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} engine.FilterResult "Rejected run"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/filter [post]
func (h *Handler) HandleFilter(c *fiber.Ctx) error {
	var req FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	l := logger.WithRayID(h.service.logger, c)
	res, runID, err := h.service.Filter(c.Context(), req, logger.Progress(l))
	if err != nil {
		return fail(c, l, "filter", err)
	}
	return respond(c, runID, res.Outcome, res)
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body: " + err.Error(),
	})
}

func fail(c *fiber.Ctx, l *zap.Logger, op string, err error) error {
	if errors.Is(err, ErrBadRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Error("Reconcile operation failed", zap.String("operation", op), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// respond answers 200 for a successful run and 422 for a run the engine
// rejected, such as a filter without criteria.
func respond(c *fiber.Ctx, runID string, outcome engine.Outcome, result any) error {
	if runID != "" {
		c.Set(RunIDHeader, runID)
	}
	status := fiber.StatusOK
	if !outcome.Success {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(result)
}
