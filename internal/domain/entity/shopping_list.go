package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemSource distinguishes engine-generated items from user-entered ones.
type ItemSource string

const (
	SourceAuto   ItemSource = "auto"
	SourceManual ItemSource = "manual"
)

// ShoppingList is a named collection of items.
type ShoppingList struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ShoppingListItem is one line of a shopping list. Auto items are replaced
// wholesale on every generation run; manual items persist across regenerations.
type ShoppingListItem struct {
	ID          string
	ListID      string
	ProductID   *string // nil for freeform manual entries
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	Checked     bool
	Source      ItemSource
	CreatedAt   time.Time
}
