package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// Stale-resolution values accepted from the prompt.
const (
	ResolutionStillHaveIt = "still_have_it"
	ResolutionUsedUp      = "used_up"
)

// ReconcileUseCase handles products whose predicted-out date has passed with no
// corroborating purchase or event. The engine never transitions status past
// "out" on its own; these products are surfaced for user confirmation instead.
type ReconcileUseCase struct {
	products    repository.ProductRepository
	consumption *RecordConsumptionUseCase
	txRunner    TxRunner
	params      velocity.Params
	log         *logger.Logger
}

// NewReconcileUseCase builds the use case.
func NewReconcileUseCase(
	products repository.ProductRepository,
	consumption *RecordConsumptionUseCase,
	txRunner TxRunner,
	params velocity.Params,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		products:    products,
		consumption: consumption,
		txRunner:    txRunner,
		params:      params,
		log:         log,
	}
}

// FindStale lists products awaiting the "is this still in your fridge?" prompt.
func (uc *ReconcileUseCase) FindStale(ctx context.Context, now time.Time) ([]dto.StaleProductDTO, error) {
	stale, err := uc.products.FindStale(ctx, now)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaleProductDTO, 0, len(stale))
	for _, p := range stale {
		if p.PredictedOutDate == nil {
			continue
		}
		out = append(out, dto.StaleProductDTO{
			ProductID:        p.ID,
			Name:             p.CanonicalName,
			Category:         p.Category,
			PredictedOutDate: *p.PredictedOutDate,
			DaysOverdue:      now.Sub(*p.PredictedOutDate).Hours() / 24,
		})
	}
	return out, nil
}

// Resolve applies the user's answer for one stale product.
//
// "still_have_it" writes a synthetic calibration anchor at now — the decay
// clock restarts without fabricating a purchase, so the product stops
// re-triggering the prompt. "used_up" records a real consumed event, which
// feeds the waste-feedback counters and the next recompute.
func (uc *ReconcileUseCase) Resolve(ctx context.Context, productID string, in dto.ResolveStaleRequest, now time.Time) error {
	switch in.Resolution {
	case ResolutionStillHaveIt:
		return uc.anchor(ctx, productID, now)
	case ResolutionUsedUp:
		quantity := decimal.NewFromInt(1)
		if in.Quantity != nil && in.Quantity.GreaterThan(decimal.Zero) {
			quantity = *in.Quantity
		}
		return uc.consumption.Record(ctx, dto.RecordConsumptionRequest{
			ProductID: productID,
			Kind:      string(entity.ConsumptionConsumed),
			Quantity:  quantity,
		})
	default:
		return domain.ErrInvalidInput
	}
}

func (uc *ReconcileUseCase) anchor(ctx context.Context, productID string, now time.Time) error {
	return uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
		events repository.ConsumptionEventRepository,
	) error {
		product, err := products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := products.SetReconciledAt(ctx, productID, now); err != nil {
			return err
		}
		product.ReconciledAt = &now

		uc.log.Info().Str("product_id", productID).Msg("stale product anchored: still have it")
		return recomputeLocked(ctx, uc.params, uc.log, products, purchases, events, product, now)
	})
}
