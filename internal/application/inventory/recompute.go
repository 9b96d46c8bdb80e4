package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// RecomputeUseCase re-derives one product's stock estimate, status and
// predicted-out date from its stored history. The derived columns are a cache:
// this use case is the only writer of them, always under the product row lock,
// so concurrent writers (receipt confirmation vs the sweep) cannot interleave.
type RecomputeUseCase struct {
	txRunner TxRunner
	params   velocity.Params
	log      *logger.Logger
}

// NewRecomputeUseCase builds the use case.
func NewRecomputeUseCase(txRunner TxRunner, params velocity.Params, log *logger.Logger) *RecomputeUseCase {
	return &RecomputeUseCase{txRunner: txRunner, params: params, log: log}
}

// Recompute locks the product row, recomputes derived fields as of now and
// persists them. Returns domain.ErrNotFound for an unknown product.
func (uc *RecomputeUseCase) Recompute(ctx context.Context, productID string, now time.Time) error {
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
		return recomputeLocked(ctx, uc.params, uc.log, products, purchases, events, product, now)
	})
}

// recomputeLocked recomputes and persists derived fields for a product whose
// row the caller already holds locked in the current transaction.
func recomputeLocked(
	ctx context.Context,
	params velocity.Params,
	log *logger.Logger,
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	events repository.ConsumptionEventRepository,
	product *entity.Product,
	now time.Time,
) error {
	in, err := loadInput(ctx, purchases, events, product)
	if err != nil {
		return err
	}
	if product.UnitType == "" {
		// Degraded precision, not an error: purchases count as one unit each.
		log.Debug().Str("product_id", product.ID).Msg("missing unit metadata, counting purchase events")
	}

	res := velocity.Recompute(in, now, params)

	log.Debug().
		Str("product_id", product.ID).
		Str("status", string(res.Status)).
		Float64("threshold_days", res.ThresholdDays).
		Msg("recomputed velocity")

	return products.UpdateDerived(ctx, product.ID, res.Status, res.StockEstimate, res.PredictedOutDate)
}

// loadInput assembles the pure engine input from stored history. Purchases
// arrive already ordered (date, receipt id, row id) from the repository.
func loadInput(
	ctx context.Context,
	purchases repository.PurchaseRepository,
	events repository.ConsumptionEventRepository,
	product *entity.Product,
) (velocity.Input, error) {
	history, err := purchases.ListByProduct(ctx, product.ID)
	if err != nil {
		return velocity.Input{}, err
	}

	points := make([]velocity.PurchasePoint, 0, len(history))
	for _, pur := range history {
		points = append(points, velocity.PurchasePoint{
			Date:  pur.PurchaseDate,
			Units: velocity.Normalize(pur.Quantity, product.UnitType, product.UnitQuantity),
		})
	}

	last, err := events.LastByProduct(ctx, product.ID)
	if err != nil {
		return velocity.Input{}, err
	}
	var lastAt *time.Time
	if last != nil {
		lastAt = &last.OccurredAt
	}

	return velocity.Input{
		Profile:           product.Profile,
		Purchases:         points,
		LastConsumptionAt: lastAt,
		ReconciledAt:      product.ReconciledAt,
		TimesConsumed:     product.TimesConsumed,
		TimesWasted:       product.TimesWasted,
	}, nil
}
