package catalog

import (
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Get("/runs", h.HandleRuns)
	group.Get("/runs/:id/failures", h.HandleFailures)
	group.Post("/:kind", h.HandleStart)
}

// HandleStart starts a pass in the background and answers 202.
// Query parameters: type (instance passes) and dry_run (gc passes).
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	kind := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	opts := RunOptions{
		Type:   c.Query("type"),
		DryRun: c.QueryBool("dry_run", false),
	}
	if err := h.service.Start(kind, opts); err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, ErrBusy):
			status = fiber.StatusConflict
		case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrTypeRequired):
			status = fiber.StatusBadRequest
		}
		l.Warn("Sync request rejected", zap.String("pass", kind), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Sync started", zap.String("pass", kind), zap.String("type", opts.Type), zap.Bool("dry_run", opts.DryRun))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"pass":    kind,
		"options": opts,
	})
}

// HandleStatus returns the running pass and the last summary.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleRuns lists journaled runs. ?limit caps the result.
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return h.journalError(c, l, err)
	}
	return c.JSON(runs)
}

// HandleFailures lists the failed items of one run.
func (h *Handler) HandleFailures(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	failures, err := h.service.Failures(c.Context(), c.Params("id"))
	if err != nil {
		return h.journalError(c, l, err)
	}
	return c.JSON(failures)
}

func (h *Handler) journalError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, ErrNoJournal) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Error("Journal query failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
