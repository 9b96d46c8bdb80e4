package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/inventory"
)

// PurchaseHandler receives confirmed purchase line items from the
// receipt-confirmation workflow and from manual entry.
type PurchaseHandler struct {
	record *inventory.RecordPurchaseUseCase
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(record *inventory.RecordPurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{record: record}
}

// Record godoc
// @Summary      Record a confirmed purchase
// @Description  Appends one purchase line item. Unknown names create the
//               product; known names accumulate receipt aliases. Derived stock
//               fields are recomputed in the same transaction.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "product_id or raw_name/canonical_name, quantity, price, purchase_date"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	productID, err := h.record.Record(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product_id": productID})
}
