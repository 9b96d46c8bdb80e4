package velocity

import "github.com/jhoicas/pantry-api/internal/domain/entity"

// ThresholdDays applies the profile multiplier to the baseline interval to get
// the reorder threshold: the number of days after a purchase at which the
// product is considered fully depleted under the model.
func (p Params) ThresholdDays(baselineDays float64, profile entity.ConsumptionProfile) float64 {
	if baselineDays <= 0 {
		return 0
	}
	return baselineDays * p.Multiplier(profile)
}

// StockAt returns the modeled stock fraction t days after the last event.
// Decay within [0, threshold] is piecewise-linear: clamp(1 - t/threshold, 0, 1).
// Real consumption is rarely linear; the linear curve is a deliberate trade of
// realism for predictability.
func StockAt(tDays, thresholdDays float64) float64 {
	if thresholdDays <= 0 {
		return 0
	}
	stock := 1 - tDays/thresholdDays
	if stock < 0 {
		return 0
	}
	if stock > 1 {
		return 1
	}
	return stock
}

// StatusFor derives the inventory status from a stock fraction.
func (p Params) StatusFor(stock float64) entity.InventoryStatus {
	switch {
	case stock <= 0:
		return entity.StatusOut
	case stock < p.StockedCutoff:
		return entity.StatusLow
	default:
		return entity.StatusStocked
	}
}
