package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest is one confirmed purchase line item arriving from the
// receipt-confirmation workflow (or a manual entry).
type RecordPurchaseRequest struct {
	ProductID string `json:"product_id"` // empty for a possibly-new product
	RawName   string `json:"raw_name"`   // receipt text, used for alias tracking

	// Metadata for first-sight product creation; ignored for known products.
	CanonicalName string          `json:"canonical_name"`
	Category      string          `json:"category"`
	Profile       string          `json:"consumption_profile"`
	UnitType      string          `json:"unit_type"`
	UnitQuantity  decimal.Decimal `json:"unit_quantity"`

	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	PurchaseDate time.Time       `json:"purchase_date"`

	ReceiptID     *string  `json:"receipt_id"`
	OCRConfidence *float64 `json:"ocr_confidence"`
	RawOCRLine    *string  `json:"raw_ocr_line"`
}

// RecordConsumptionRequest is an explicit user confirmation that stock was
// consumed or wasted.
type RecordConsumptionRequest struct {
	ProductID  string          `json:"product_id"`
	Kind       string          `json:"kind"` // consumed | wasted
	Quantity   decimal.Decimal `json:"quantity"`
	OccurredAt *time.Time      `json:"occurred_at"` // defaults to now
}

// ReassignProfileRequest is the explicit classifier override.
type ReassignProfileRequest struct {
	Profile string `json:"consumption_profile"`
}

// ProductVelocityDTO is the per-product outbound contract for dashboards and alerts.
type ProductVelocityDTO struct {
	ProductID        string     `json:"product_id"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Profile          string     `json:"consumption_profile"`
	Status           string     `json:"status"`
	StockEstimate    *float64   `json:"stock_estimate"`
	PredictedOutDate *time.Time `json:"predicted_out_date"`

	LastPurchasedAt      *time.Time `json:"last_purchased_at"`
	DaysSinceLastEvent   *float64   `json:"days_since_last_event"`
	BaselineIntervalDays float64    `json:"baseline_interval_days"`
	ThresholdDays        float64    `json:"threshold_days"`
	QuantityMultiplier   float64    `json:"quantity_multiplier"`
	PurchaseCount        int        `json:"purchase_count"`
}

// StaleProductDTO is one entry of the "is this still in your fridge?" prompt.
type StaleProductDTO struct {
	ProductID        string    `json:"product_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	PredictedOutDate time.Time `json:"predicted_out_date"`
	DaysOverdue      float64   `json:"days_overdue"`
}

// ResolveStaleRequest is the user's answer to the stale prompt.
type ResolveStaleRequest struct {
	Resolution string           `json:"resolution"` // still_have_it | used_up
	Quantity   *decimal.Decimal `json:"quantity"`   // used_up only; defaults to 1
}
