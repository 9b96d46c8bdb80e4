package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// RecordConsumptionUseCase appends a confirmed consumed/wasted event, bumps the
// product's monotone counters and recomputes derived state. The counters feed
// the waste-feedback adjuster, so they only ever move on confirmed events —
// time-based depletion alone never touches them.
type RecordConsumptionUseCase struct {
	txRunner TxRunner
	params   velocity.Params
	log      *logger.Logger
	now      func() time.Time
}

// NewRecordConsumptionUseCase builds the use case. nowFn may be nil (wall clock).
func NewRecordConsumptionUseCase(txRunner TxRunner, params velocity.Params, log *logger.Logger, nowFn func() time.Time) *RecordConsumptionUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &RecordConsumptionUseCase{txRunner: txRunner, params: params, log: log, now: nowFn}
}

// Record validates and persists one consumption event.
func (uc *RecordConsumptionUseCase) Record(ctx context.Context, in dto.RecordConsumptionRequest) error {
	now := uc.now()

	kind := entity.ConsumptionKind(in.Kind)
	if kind != entity.ConsumptionConsumed && kind != entity.ConsumptionWasted {
		return domain.ErrInvalidInput
	}
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	quantity := in.Quantity
	if !quantity.GreaterThan(decimal.Zero) {
		quantity = decimal.NewFromInt(1)
	}
	occurredAt := now
	if in.OccurredAt != nil {
		if in.OccurredAt.After(now) {
			return domain.ErrInvalidInput
		}
		occurredAt = *in.OccurredAt
	}

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
		events repository.ConsumptionEventRepository,
	) error {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		event := &entity.ConsumptionEvent{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Kind:       kind,
			Quantity:   quantity,
			OccurredAt: occurredAt,
			CreatedAt:  now,
		}
		if err := events.Create(ctx, event); err != nil {
			return err
		}

		if kind == entity.ConsumptionConsumed {
			err = products.IncrementConsumed(ctx, product.ID)
			product.TimesConsumed++
		} else {
			err = products.IncrementWasted(ctx, product.ID)
			product.TimesWasted++
		}
		if err != nil {
			return err
		}

		return recomputeLocked(ctx, uc.params, uc.log, products, purchases, events, product, now)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("product_id", in.ProductID).Str("kind", string(kind)).Msg("consumption recorded")
	return nil
}
