package velocity

import (
	"sort"
	"time"
)

const hoursPerDay = 24.0

// Intervals computes the inter-purchase gaps in days for one product.
// dates must be sorted ascending; n dates produce n-1 intervals. Fewer than two
// dates yield an empty slice, which signals "insufficient data" upstream rather
// than an error.
func Intervals(dates []time.Time) []float64 {
	if len(dates) < 2 {
		return nil
	}
	out := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		out = append(out, dates[i].Sub(dates[i-1]).Hours()/hoursPerDay)
	}
	return out
}

// BaselineInterval reduces a product's intervals to the recency-weighted average
// number of days between purchases.
//
// With at least EWMAMinIntervals intervals it uses an exponentially-weighted mean
// (most recent interval weighted highest, weight halving each step back) so the
// model adapts to changing household behavior faster than a flat average would.
// Below that it falls back to the arithmetic mean. Before weighting, any single
// interval larger than OutlierCapFactor times the median of the other intervals
// is capped there, so one skipped shopping trip or bulk buy cannot distort the
// baseline.
func (p Params) BaselineInterval(intervals []float64) float64 {
	if len(intervals) == 0 {
		return 0
	}
	damped := p.dampenOutliers(intervals)

	if len(damped) < p.EWMAMinIntervals {
		var sum float64
		for _, v := range damped {
			sum += v
		}
		return sum / float64(len(damped))
	}

	// Newest interval is last; weight halves for each step back.
	var weighted, weights float64
	w := 1.0
	for i := len(damped) - 1; i >= 0; i-- {
		weighted += damped[i] * w
		weights += w
		w /= 2
	}
	return weighted / weights
}

// dampenOutliers caps each interval at OutlierCapFactor times the median of the
// remaining intervals. A single interval has no peers and is left untouched.
func (p Params) dampenOutliers(intervals []float64) []float64 {
	if len(intervals) < 2 {
		return intervals
	}
	out := make([]float64, len(intervals))
	for i, v := range intervals {
		others := make([]float64, 0, len(intervals)-1)
		others = append(others, intervals[:i]...)
		others = append(others, intervals[i+1:]...)
		med := median(others)
		if med > 0 && v > p.OutlierCapFactor*med {
			v = p.OutlierCapFactor * med
		}
		out[i] = v
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
