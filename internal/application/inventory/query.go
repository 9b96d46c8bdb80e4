package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
)

// QueryUseCase serves the read side: live velocity for dashboards and alerts.
// Reads run outside any lock and compute from history directly, so they never
// block writers and a slightly stale persisted snapshot does not matter.
type QueryUseCase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	events    repository.ConsumptionEventRepository
	params    velocity.Params
}

// NewQueryUseCase builds the use case over pool-bound repositories.
func NewQueryUseCase(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	events repository.ConsumptionEventRepository,
	params velocity.Params,
) *QueryUseCase {
	return &QueryUseCase{products: products, purchases: purchases, events: events, params: params}
}

// List returns velocity data for every product, ordered by category then name
// (the dashboard's grouping order).
func (uc *QueryUseCase) List(ctx context.Context, now time.Time) ([]dto.ProductVelocityDTO, error) {
	all, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductVelocityDTO, 0, len(all))
	for _, product := range all {
		d, err := uc.velocityFor(ctx, product, now)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ListLow returns only products predicted to need reorder soon (low or out).
func (uc *QueryUseCase) ListLow(ctx context.Context, now time.Time) ([]dto.ProductVelocityDTO, error) {
	all, err := uc.List(ctx, now)
	if err != nil {
		return nil, err
	}
	low := make([]dto.ProductVelocityDTO, 0, len(all))
	for _, d := range all {
		if d.Status == string(entity.StatusLow) || d.Status == string(entity.StatusOut) {
			low = append(low, d)
		}
	}
	return low, nil
}

// Get returns velocity data for one product.
func (uc *QueryUseCase) Get(ctx context.Context, productID string, now time.Time) (dto.ProductVelocityDTO, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return dto.ProductVelocityDTO{}, err
	}
	if product == nil {
		return dto.ProductVelocityDTO{}, domain.ErrNotFound
	}
	return uc.velocityFor(ctx, product, now)
}

func (uc *QueryUseCase) velocityFor(ctx context.Context, product *entity.Product, now time.Time) (dto.ProductVelocityDTO, error) {
	in, err := loadInput(ctx, uc.purchases, uc.events, product)
	if err != nil {
		return dto.ProductVelocityDTO{}, err
	}
	res := velocity.Recompute(in, now, uc.params)

	d := dto.ProductVelocityDTO{
		ProductID:            product.ID,
		Name:                 product.CanonicalName,
		Category:             product.Category,
		Profile:              string(product.Profile),
		Status:               string(res.Status),
		StockEstimate:        res.StockEstimate,
		PredictedOutDate:     res.PredictedOutDate,
		BaselineIntervalDays: res.BaselineIntervalDays,
		ThresholdDays:        res.ThresholdDays,
		QuantityMultiplier:   res.QuantityMultiplier,
		PurchaseCount:        len(in.Purchases),
	}
	if n := len(in.Purchases); n > 0 {
		last := in.Purchases[n-1].Date
		d.LastPurchasedAt = &last
		days := now.Sub(last).Hours() / 24
		d.DaysSinceLastEvent = &days
	}
	return d, nil
}
