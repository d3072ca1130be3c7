package generator

import (
	"errors"

	"asset-variants/core/asset"
	"asset-variants/core/logger"
	"asset-variants/core/variant"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for variant generation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the variant routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/variants")
	group.Post("/prefab", h.HandleGeneratePrefab)
	group.Post("/scene", h.HandleGenerateScene)
	group.Post("/folder", h.HandleGenerateFolder)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Get("/reconcile", h.HandleReconcile)
}

// HandleGeneratePrefab documents POST /variants/prefab.
// @Summary Generate Prefab Variant
// @Description Creates low-resolution variants of a prefab and everything it references.
// @Tags variants
// @Accept json
// @Produce json
// @Param request body Request true "Prefab path and optional profile"
// @Success 200 {object} variant.Report "Run Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Wrong Asset Kind"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /variants/prefab [post]
func (h *Handler) HandleGeneratePrefab(c *fiber.Ctx) error {
	return h.generate(c, variant.ModePrefab)
}

// HandleGenerateScene documents POST /variants/scene.
// @Summary Generate Scene Variant
// @Description Creates a low-resolution copy of a scene next to the original and relinks its instances.
// @Tags variants
// @Accept json
// @Produce json
// @Param request body Request true "Scene path and optional profile"
// @Success 200 {object} variant.Report "Run Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /variants/scene [post]
func (h *Handler) HandleGenerateScene(c *fiber.Ctx) error {
	return h.generate(c, variant.ModeScene)
}

// HandleGenerateFolder documents POST /variants/folder.
// @Summary Generate Folder Variants
// @Description Processes every prefab below a folder, skipping existing variants.
// @Tags variants
// @Accept json
// @Produce json
// @Param request body Request true "Folder path and optional profile"
// @Success 200 {object} variant.Report "Run Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /variants/folder [post]
func (h *Handler) HandleGenerateFolder(c *fiber.Ctx) error {
	return h.generate(c, variant.ModeFolder)
}

func (h *Handler) generate(c *fiber.Ctx, mode variant.Mode) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Generating variants", zap.String("mode", string(mode)), zap.String("path", req.Path))
	report, err := h.service.Generate(c.Context(), mode, req)
	if err != nil {
		l.Error("Generation failed", zap.String("path", req.Path), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleGetRun returns the ledger records of a run.
// @Summary Get Run
// @Description Lists the substitutions recorded for a run.
// @Tags variants
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} ledger.Record "Run Records"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Ledger Disabled"
// @Router /variants/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	records, err := h.service.Run(c.Context(), id)
	if err != nil {
		l.Error("Run lookup failed", zap.String("run_id", id), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	return c.JSON(records)
}

// HandleReconcile compares the ledger with stored variants.
// @Summary Reconcile Variants
// @Description Compares recorded variants with the variant tree in storage. With purge and apply, stale records and orphan objects are deleted.
// @Tags variants
// @Produce json
// @Param key query string false "Reconcile a single variant path"
// @Param profile query string false "Quality profile"
// @Param purge query boolean false "Plan purge actions"
// @Param apply query boolean false "Execute planned actions"
// @Success 200 {object} map[string]interface{} "Reconcile Plan"
// @Failure 503 {object} map[string]string "Ledger Disabled"
// @Router /variants/reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	profile := c.Query("profile")

	if key := c.Query("key"); key != "" {
		result, err := h.service.ReconcileOne(c.Context(), profile, key)
		if err != nil {
			l.Error("Reconcile failed", zap.String("key", key), zap.Error(err))
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(result)
	}

	opts := ReconcileOptions{
		Profile: profile,
		Purge:   c.QueryBool("purge"),
		Apply:   c.QueryBool("apply"),
	}
	plan, executed, err := h.service.Reconcile(c.Context(), opts)
	if err != nil {
		l.Error("Reconcile failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Reconcile completed",
		zap.Int("items", plan.Summary.TotalItems),
		zap.Int("actions", len(plan.Actions)),
		zap.Int("executed", executed))

	return c.JSON(fiber.Map{
		"summary":  plan.Summary,
		"results":  plan.Results,
		"actions":  plan.Actions,
		"executed": executed,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, asset.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, asset.ErrWrongKind):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrLedgerDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
