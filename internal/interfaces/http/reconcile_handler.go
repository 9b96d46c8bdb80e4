package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/inventory"
)

// ReconcileHandler serves the stale-product confirmation flow.
type ReconcileHandler struct {
	reconcile *inventory.ReconcileUseCase
}

// NewReconcileHandler builds the handler.
func NewReconcileHandler(reconcile *inventory.ReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{reconcile: reconcile}
}

// ListStale godoc
// @Summary      Products past their predicted-out date awaiting confirmation
// @Tags         reconciliation
// @Produce      json
// @Success      200  {array}  dto.StaleProductDTO
// @Router       /api/reconciliation/stale [get]
func (h *ReconcileHandler) ListStale(c *fiber.Ctx) error {
	stale, err := h.reconcile.FindStale(c.Context(), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(stale), "products": stale})
}

// Resolve godoc
// @Summary      Answer the stale prompt for one product
// @Description  resolution is "still_have_it" (restarts the decay clock) or
//               "used_up" (records a consumed event).
// @Tags         reconciliation
// @Accept       json
// @Produce      json
// @Param        productID  path  string                  true  "Product ID"
// @Param        body       body  dto.ResolveStaleRequest true  "resolution, quantity (optional)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/{productID}/resolve [post]
func (h *ReconcileHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveStaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.reconcile.Resolve(c.Context(), c.Params("productID"), in, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"product_id": c.Params("productID"), "resolution": in.Resolution})
}
