package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateListRequest creates an empty shopping list.
type CreateListRequest struct {
	Name string `json:"name"`
}

// AddItemRequest adds a manual item to a list.
type AddItemRequest struct {
	ProductID   *string         `json:"product_id"` // nil for freeform entries
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest patches an item; nil fields are left unchanged.
type UpdateItemRequest struct {
	Checked     *bool            `json:"checked"`
	Quantity    *decimal.Decimal `json:"quantity"`
	ProductName *string          `json:"product_name"`
}

// ShoppingListDTO summary of a list.
type ShoppingListDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ItemCount   int        `json:"item_count"`
}

// ShoppingListItemDTO one line of a list.
type ShoppingListItemDTO struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Checked     bool            `json:"checked"`
	Source      string          `json:"source"`
}

// GenerateResultDTO outcome of a generation run.
type GenerateResultDTO struct {
	ListID    string `json:"list_id"`
	AutoItems int    `json:"auto_items"`
}
