package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
)

func newConsumptionUC(s *memStore, now time.Time) *inventory.RecordConsumptionUseCase {
	return inventory.NewRecordConsumptionUseCase(
		&fakeTxRunner{s}, velocity.DefaultParams(), testLogger(),
		func() time.Time { return now },
	)
}

func TestRecordConsumption_RejectsUnknownKind(t *testing.T) {
	uc := newConsumptionUC(newMemStore(), day(0))

	err := uc.Record(context.Background(), dto.RecordConsumptionRequest{
		ProductID: "p1",
		Kind:      "misplaced",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordConsumption_UnknownProduct(t *testing.T) {
	uc := newConsumptionUC(newMemStore(), day(0))

	err := uc.Record(context.Background(), dto.RecordConsumptionRequest{
		ProductID: "nope",
		Kind:      "consumed",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordConsumption_RejectsFutureOccurredAt(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Milk", entity.ProfilePerishable, 0, 8, 3, 1)
	uc := newConsumptionUC(s, day(16))

	future := day(17)
	err := uc.Record(context.Background(), dto.RecordConsumptionRequest{
		ProductID:  "p1",
		Kind:       "consumed",
		OccurredAt: &future,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordConsumption_ResetsDecayClock(t *testing.T) {
	s := newMemStore()
	// Purchases at days 0, 8, 16: perishable threshold 6.8 days. At day 22 the
	// estimate has decayed to ~0.12 (low).
	seedProduct(s, "p1", "Milk", entity.ProfilePerishable, 0, 8, 3, 1)
	uc := newConsumptionUC(s, day(22))

	err := uc.Record(context.Background(), dto.RecordConsumptionRequest{
		ProductID: "p1",
		Kind:      "consumed",
	})
	require.NoError(t, err)

	p := s.products["p1"]
	assert.Equal(t, 1, p.TimesConsumed)
	assert.Equal(t, 0, p.TimesWasted)
	require.Len(t, s.events, 1)
	assert.Equal(t, entity.ConsumptionConsumed, s.events[0].Kind)

	// The confirmed event at day 22 restarts the decay clock.
	assert.Equal(t, entity.StatusStocked, p.InventoryStatus)
	require.NotNil(t, p.CurrentStockEstimate)
	assert.InDelta(t, 1.0, *p.CurrentStockEstimate, 1e-9)
}

func TestRecordConsumption_WastedBumpsWasteCounter(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Spinach", entity.ProfilePerishable, 0, 8, 3, 1)
	uc := newConsumptionUC(s, day(18))

	err := uc.Record(context.Background(), dto.RecordConsumptionRequest{
		ProductID: "p1",
		Kind:      "wasted",
	})
	require.NoError(t, err)

	p := s.products["p1"]
	assert.Equal(t, 0, p.TimesConsumed)
	assert.Equal(t, 1, p.TimesWasted)
	require.Len(t, s.events, 1)
	assert.Equal(t, entity.ConsumptionWasted, s.events[0].Kind)
}
