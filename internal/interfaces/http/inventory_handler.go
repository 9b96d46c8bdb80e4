package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// InventoryHandler serves velocity status reads, consumption confirmations and
// profile overrides.
type InventoryHandler struct {
	query       *inventory.QueryUseCase
	consumption *inventory.RecordConsumptionUseCase
	profile     *inventory.ReassignProfileUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(
	query *inventory.QueryUseCase,
	consumption *inventory.RecordConsumptionUseCase,
	profile *inventory.ReassignProfileUseCase,
) *InventoryHandler {
	return &InventoryHandler{query: query, consumption: consumption, profile: profile}
}

// List godoc
// @Summary      All products with live velocity status
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ProductVelocityDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.query.List(c.Context(), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// ListLow godoc
// @Summary      Products predicted to need reorder soon (low or out)
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ProductVelocityDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low [get]
func (h *InventoryHandler) ListLow(c *fiber.Ctx) error {
	list, err := h.query.ListLow(c.Context(), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// GetVelocity godoc
// @Summary      Velocity detail for one product
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  dto.ProductVelocityDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/velocity [get]
func (h *InventoryHandler) GetVelocity(c *fiber.Ctx) error {
	d, err := h.query.Get(c.Context(), c.Params("id"), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(d)
}

// RecordConsumption godoc
// @Summary      Record a confirmed consumed/wasted event
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Product ID"
// @Param        body  body  dto.RecordConsumptionRequest  true  "kind (consumed|wasted), quantity, occurred_at"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/consume [post]
func (h *InventoryHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	in.ProductID = c.Params("id")
	if err := h.consumption.Record(c.Context(), in); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "event recorded"})
}

// ReassignProfile godoc
// @Summary      Override the consumption profile of a product
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Product ID"
// @Param        body  body  dto.ReassignProfileRequest  true  "consumption_profile"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/profile [put]
func (h *InventoryHandler) ReassignProfile(c *fiber.Ctx) error {
	var in dto.ReassignProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	err := h.profile.Reassign(c.Context(), c.Params("id"), entity.ConsumptionProfile(in.Profile), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "profile reassigned"})
}
