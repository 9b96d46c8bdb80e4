package velocity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pantry-api/internal/domain/velocity"
)

func TestWasteRatio(t *testing.T) {
	assert.Zero(t, velocity.WasteRatio(0, 0), "no history yields zero ratio, not NaN")
	assert.Zero(t, velocity.WasteRatio(10, 0))
	assert.InDelta(t, 0.8, velocity.WasteRatio(2, 8), 1e-9)
	assert.InDelta(t, 1.0, velocity.WasteRatio(0, 5), 1e-9)
}

func TestAdjustForWaste_BelowTriggerIsIdentity(t *testing.T) {
	p := velocity.DefaultParams()

	adj, mult := p.AdjustForWaste(10, 8, 2) // ratio 0.2
	assert.InDelta(t, 10, adj, 1e-9)
	assert.InDelta(t, 1.0, mult, 1e-9)
}

func TestAdjustForWaste_ChronicWaste(t *testing.T) {
	p := velocity.DefaultParams()

	// Greens bought weekly but thrown out: 8 wasted vs 2 consumed, ratio 0.8.
	// Threshold extends +20% and the suggested quantity halves.
	adj, mult := p.AdjustForWaste(10, 2, 8)
	assert.InDelta(t, 12, adj, 1e-9)
	assert.InDelta(t, 0.5, mult, 1e-9)
}

func TestAdjustForWaste_Bounds(t *testing.T) {
	p := velocity.DefaultParams()

	for consumed := 0; consumed <= 10; consumed++ {
		for wasted := 0; wasted <= 10; wasted++ {
			adj, mult := p.AdjustForWaste(10, consumed, wasted)
			assert.GreaterOrEqual(t, adj, 10.0, "adjusted threshold never drops below unadjusted")
			assert.GreaterOrEqual(t, mult, 0.5)
			assert.LessOrEqual(t, mult, 1.0)
		}
	}
}

func TestAdjustForWaste_MonotoneInRatio(t *testing.T) {
	p := velocity.DefaultParams()

	prevAdj, prevMult := p.AdjustForWaste(10, 10, 0)
	for wasted := 1; wasted <= 10; wasted++ {
		adj, mult := p.AdjustForWaste(10, 10-wasted, wasted)
		assert.GreaterOrEqual(t, adj, prevAdj)
		assert.LessOrEqual(t, mult, prevMult)
		prevAdj, prevMult = adj, mult
	}
}
