package velocity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// PurchasePoint is one normalized purchase as the engine sees it.
type PurchasePoint struct {
	Date  time.Time
	Units decimal.Decimal // normalized units (Normalize output)
}

// Input is the full history the engine needs for one product. The engine is a
// pure function of Input and now: it reads no clock and keeps no state between
// runs, so recomputation is idempotent and re-derivable from history alone.
type Input struct {
	Profile   entity.ConsumptionProfile
	Purchases []PurchasePoint // sorted ascending by Date; ties pre-resolved by the loader

	LastConsumptionAt *time.Time // most recent consumption event, if any
	ReconciledAt      *time.Time // synthetic anchor from the stale-data reconciler

	TimesConsumed int
	TimesWasted   int
}

// Result is the derived state for one product at a given instant.
type Result struct {
	Status           entity.InventoryStatus
	StockEstimate    *float64   // nil while calibrating
	PredictedOutDate *time.Time // nil while calibrating

	BaselineIntervalDays float64
	ThresholdDays        float64 // waste-adjusted
	QuantityMultiplier   float64 // suggested reorder quantity scale, [MinQuantityMultiplier, 1.0]
}

// Recompute derives stock estimate, status and predicted-out date from a
// product's history as of now.
//
// Fewer than MinPurchases purchases is a terminal "not enough data" state, not a
// failure: the product reports calibrating with nil stock and date until more
// purchases arrive. Every numeric path past that point has a defined fallback
// (clamped ranges, default multipliers), so the computation is total.
func Recompute(in Input, now time.Time, p Params) Result {
	if len(in.Purchases) < p.MinPurchases {
		return Result{Status: entity.StatusCalibrating, QuantityMultiplier: 1.0}
	}

	dates := make([]time.Time, len(in.Purchases))
	for i, pt := range in.Purchases {
		dates[i] = pt.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	baseline := p.BaselineInterval(Intervals(dates))
	threshold := p.ThresholdDays(baseline, in.Profile)
	adjusted, qtyMult := p.AdjustForWaste(threshold, in.TimesConsumed, in.TimesWasted)

	// The decay clock starts at the most recent of: last purchase, last confirmed
	// consumption event, reconciliation anchor.
	lastEvent := dates[len(dates)-1]
	if in.LastConsumptionAt != nil && in.LastConsumptionAt.After(lastEvent) {
		lastEvent = *in.LastConsumptionAt
	}
	if in.ReconciledAt != nil && in.ReconciledAt.After(lastEvent) {
		lastEvent = *in.ReconciledAt
	}

	t := now.Sub(lastEvent).Hours() / hoursPerDay
	if t < 0 {
		t = 0
	}
	stock := StockAt(t, adjusted)
	predicted := lastEvent.Add(time.Duration(adjusted * hoursPerDay * float64(time.Hour)))

	return Result{
		Status:               p.StatusFor(stock),
		StockEstimate:        &stock,
		PredictedOutDate:     &predicted,
		BaselineIntervalDays: baseline,
		ThresholdDays:        adjusted,
		QuantityMultiplier:   qtyMult,
	}
}
