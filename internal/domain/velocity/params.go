package velocity

import "github.com/jhoicas/pantry-api/internal/domain/entity"

// Params holds the engine tunables. The profile multipliers and the stocked/low
// cutoff are calibrated defaults, not invariants, so they are injected rather
// than hard-coded at the call sites.
type Params struct {
	// Threshold multiplier per consumption profile. Values < 1.0 reorder early,
	// values > 1.0 tolerate running closer to empty.
	ProfileMultipliers map[entity.ConsumptionProfile]float64
	DefaultMultiplier  float64 // fallback for an unknown profile

	StockedCutoff float64 // stock >= cutoff -> stocked; (0, cutoff) -> low; 0 -> out
	MinPurchases  int     // below this the product is still calibrating

	EWMAMinIntervals int     // recency weighting kicks in at this many intervals
	OutlierCapFactor float64 // interval cap as a multiple of the median of the others

	WasteRatioTrigger     float64 // waste ratio above which feedback applies
	WasteThresholdBoost   float64 // max fractional threshold extension at ratio 1.0
	WasteQuantitySlope    float64 // slope of the suggested-quantity reduction
	MinQuantityMultiplier float64 // floor of the suggested-quantity multiplier
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		ProfileMultipliers: map[entity.ConsumptionProfile]float64{
			entity.ProfilePerishable: 0.85, // short shelf life; reorder before literal exhaustion
			entity.ProfilePantry:     1.2,  // shelf-stable; tolerate running closer to empty
			entity.ProfileHousehold:  1.5,  // large packs bought infrequently; avoid over-alerting
			entity.ProfileFrozen:     1.1,  // extended shelf life, moderate velocity
		},
		DefaultMultiplier:     1.0,
		StockedCutoff:         0.4,
		MinPurchases:          3,
		EWMAMinIntervals:      4,
		OutlierCapFactor:      3.0,
		WasteRatioTrigger:     0.3,
		WasteThresholdBoost:   0.25,
		WasteQuantitySlope:    0.625,
		MinQuantityMultiplier: 0.5,
	}
}

// Multiplier returns the threshold multiplier for a profile.
func (p Params) Multiplier(profile entity.ConsumptionProfile) float64 {
	if m, ok := p.ProfileMultipliers[profile]; ok {
		return m
	}
	return p.DefaultMultiplier
}
