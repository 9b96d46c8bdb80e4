package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one confirmed acquisition event. Immutable after creation except for
// corrective edits during receipt confirmation. Ordering by PurchaseDate is the
// basis for interval computation; ties are broken by receipt id then row id so the
// calculation stays deterministic.
type Purchase struct {
	ID           string
	ProductID    string
	PurchaseDate time.Time
	Quantity     decimal.Decimal // in the product's native unit, e.g. "2 boxes"
	Price        decimal.Decimal

	ReceiptID     *string  // nil for manual entries
	OCRConfidence *float64 // nil for manual entries
	RawOCRLine    *string

	CreatedAt time.Time
}
