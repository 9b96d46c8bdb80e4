package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/shopping"
)

// ShoppingListHandler serves shopping list management and auto-generation.
type ShoppingListHandler struct {
	lists    *shopping.ListUseCase
	generate *shopping.GenerateUseCase
}

// NewShoppingListHandler builds the handler.
func NewShoppingListHandler(lists *shopping.ListUseCase, generate *shopping.GenerateUseCase) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists, generate: generate}
}

// Create godoc
// @Summary      Create an empty shopping list
// @Tags         shopping-lists
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListRequest  true  "name (optional)"
// @Success      201   {object}  dto.ShoppingListDTO
// @Router       /api/shopping-lists [post]
func (h *ShoppingListHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateListRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	list, err := h.lists.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// List godoc
// @Summary      All shopping lists with item counts
// @Tags         shopping-lists
// @Produce      json
// @Success      200  {array}  dto.ShoppingListDTO
// @Router       /api/shopping-lists [get]
func (h *ShoppingListHandler) List(c *fiber.Ctx) error {
	lists, err := h.lists.List(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(lists), "lists": lists})
}

// Get godoc
// @Summary      One shopping list with its items
// @Tags         shopping-lists
// @Produce      json
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shopping-lists/{id} [get]
func (h *ShoppingListHandler) Get(c *fiber.Ctx) error {
	list, items, err := h.lists.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"list": list, "items": items})
}

// Delete godoc
// @Summary      Delete a shopping list and its items
// @Tags         shopping-lists
// @Produce      json
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shopping-lists/{id} [delete]
func (h *ShoppingListHandler) Delete(c *fiber.Ctx) error {
	if err := h.lists.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"deleted": c.Params("id")})
}

// Generate godoc
// @Summary      Regenerate auto items from low/out inventory
// @Description  Replaces every auto item of the list with fresh candidates,
//               most urgent first. Manual items are never touched.
// @Tags         shopping-lists
// @Produce      json
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  dto.GenerateResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shopping-lists/{id}/generate [post]
func (h *ShoppingListHandler) Generate(c *fiber.Ctx) error {
	result, err := h.generate.Generate(c.Context(), c.Params("id"), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// AddItem godoc
// @Summary      Add a manual item to a list
// @Tags         shopping-lists
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "List ID"
// @Param        body  body  dto.AddItemRequest true  "product_name, quantity, product_id (optional)"
// @Success      201   {object}  dto.ShoppingListItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shopping-lists/{id}/items [post]
func (h *ShoppingListHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.lists.AddItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem godoc
// @Summary      Patch an item (checked, quantity, name)
// @Tags         shopping-lists
// @Accept       json
// @Produce      json
// @Param        id      path  string                true  "List ID"
// @Param        itemID  path  string                true  "Item ID"
// @Param        body    body  dto.UpdateItemRequest true  "fields to change"
// @Success      200     {object}  dto.ShoppingListItemDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/shopping-lists/{id}/items/{itemID} [patch]
func (h *ShoppingListHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.lists.UpdateItem(c.Context(), c.Params("id"), c.Params("itemID"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// DeleteItem godoc
// @Summary      Delete an item from a list
// @Tags         shopping-lists
// @Produce      json
// @Param        id      path  string  true  "List ID"
// @Param        itemID  path  string  true  "Item ID"
// @Success      200     {object}  map[string]string
// @Router       /api/shopping-lists/{id}/items/{itemID} [delete]
func (h *ShoppingListHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.lists.DeleteItem(c.Context(), c.Params("id"), c.Params("itemID")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"deleted": c.Params("itemID")})
}
