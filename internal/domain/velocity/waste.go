package velocity

// WasteRatio is the fraction of confirmed dispositions that ended as waste.
// The max(1, total) denominator keeps the ratio defined with no history.
func WasteRatio(timesConsumed, timesWasted int) float64 {
	total := timesConsumed + timesWasted
	if total < 1 {
		total = 1
	}
	return float64(timesWasted) / float64(total)
}

// AdjustForWaste modifies the effective threshold and the suggested reorder
// quantity for chronically wasted items. A waste ratio above the trigger means
// the household does not consume the product as fast as purchase cadence
// implies, so the threshold is lengthened (by up to WasteThresholdBoost,
// proportional to the ratio) and the quantity multiplier drops below 1.0 so the
// shopping list proposes smaller reorders.
//
// The feedback is monotone and bounded to prevent runaway loops: the adjusted
// threshold never drops below the unadjusted value and the multiplier never
// drops below MinQuantityMultiplier.
func (p Params) AdjustForWaste(thresholdDays float64, timesConsumed, timesWasted int) (adjustedDays, quantityMultiplier float64) {
	ratio := WasteRatio(timesConsumed, timesWasted)
	if ratio <= p.WasteRatioTrigger {
		return thresholdDays, 1.0
	}

	adjustedDays = thresholdDays * (1 + p.WasteThresholdBoost*ratio)
	if adjustedDays < thresholdDays {
		adjustedDays = thresholdDays
	}

	quantityMultiplier = 1 - p.WasteQuantitySlope*ratio
	if quantityMultiplier < p.MinQuantityMultiplier {
		quantityMultiplier = p.MinQuantityMultiplier
	}
	if quantityMultiplier > 1 {
		quantityMultiplier = 1
	}
	return adjustedDays, quantityMultiplier
}
