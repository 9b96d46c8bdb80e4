package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionProfile is the coarse decay category assigned at ingest time by the
// external classifier. Immutable once set unless explicitly reclassified.
type ConsumptionProfile string

const (
	ProfilePerishable ConsumptionProfile = "perishable"
	ProfilePantry     ConsumptionProfile = "pantry"
	ProfileHousehold  ConsumptionProfile = "household"
	ProfileFrozen     ConsumptionProfile = "frozen"
)

// Valid reports whether p is one of the four known profiles.
func (p ConsumptionProfile) Valid() bool {
	switch p {
	case ProfilePerishable, ProfilePantry, ProfileHousehold, ProfileFrozen:
		return true
	}
	return false
}

// InventoryStatus is derived by the velocity engine alongside the stock estimate.
type InventoryStatus string

const (
	StatusCalibrating InventoryStatus = "calibrating"
	StatusStocked     InventoryStatus = "stocked"
	StatusLow         InventoryStatus = "low"
	StatusOut         InventoryStatus = "out"
)

// Product is a distinct grocery item the household buys repeatedly.
// CurrentStockEstimate, PredictedOutDate and InventoryStatus are a rebuildable
// cache of (purchases, consumption events, profile): recomputed by the velocity
// engine, never hand-edited. Products are never hard-deleted; purchase history
// must persist for velocity calculation.
type Product struct {
	ID            string
	CanonicalName string   // deduplicated display name
	RawNames      []string // receipt aliases seen for this product
	Category      string   // UI grouping and tie-break signal, not the decay driver
	Profile       ConsumptionProfile

	UnitType     string          // normalization metadata, e.g. "count"
	UnitQuantity decimal.Decimal // units per package, e.g. 12 for a dozen; zero = unknown

	CurrentStockEstimate *float64 // [0.0, 1.0]; nil while calibrating
	PredictedOutDate     *time.Time
	InventoryStatus      InventoryStatus

	TimesConsumed int
	TimesWasted   int

	// ReconciledAt is the synthetic calibration anchor written by the stale-data
	// reconciler's "still have it" resolution. It extends the effective last-event
	// timestamp without fabricating a purchase.
	ReconciledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastRawName returns the most recently seen receipt alias, or the canonical name.
func (p *Product) LastRawName() string {
	if len(p.RawNames) == 0 {
		return p.CanonicalName
	}
	return p.RawNames[len(p.RawNames)-1]
}

// HasAlias reports whether rawName was already recorded for this product.
func (p *Product) HasAlias(rawName string) bool {
	for _, n := range p.RawNames {
		if n == rawName {
			return true
		}
	}
	return false
}
