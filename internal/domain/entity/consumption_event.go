package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionKind is the user-confirmed disposition of stock.
type ConsumptionKind string

const (
	ConsumptionConsumed ConsumptionKind = "consumed"
	ConsumptionWasted   ConsumptionKind = "wasted"
)

// ConsumptionEvent records a confirmed disposition of stock for a product.
// Created by explicit user action or by the stale-data reconciler's "used up"
// resolution. Time-based depletion is a prediction, never an event, until the
// user confirms it.
type ConsumptionEvent struct {
	ID         string
	ProductID  string
	Kind       ConsumptionKind
	Quantity   decimal.Decimal
	OccurredAt time.Time
	CreatedAt  time.Time
}
