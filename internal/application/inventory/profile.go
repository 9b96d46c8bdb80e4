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

// ReassignProfileUseCase applies an explicit consumption-profile override. The
// profile is normally written once by the external classifier; a reassignment
// simply retriggers recompute, since derived fields are a pure function of
// (history, profile).
type ReassignProfileUseCase struct {
	txRunner TxRunner
	params   velocity.Params
	log      *logger.Logger
}

// NewReassignProfileUseCase builds the use case.
func NewReassignProfileUseCase(txRunner TxRunner, params velocity.Params, log *logger.Logger) *ReassignProfileUseCase {
	return &ReassignProfileUseCase{txRunner: txRunner, params: params, log: log}
}

// Reassign sets the profile and recomputes under the row lock.
func (uc *ReassignProfileUseCase) Reassign(ctx context.Context, productID string, profile entity.ConsumptionProfile, now time.Time) error {
	if !profile.Valid() {
		return domain.ErrInvalidInput
	}
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
		if err := products.UpdateProfile(ctx, productID, profile); err != nil {
			return err
		}
		product.Profile = profile

		uc.log.Info().Str("product_id", productID).Str("profile", string(profile)).Msg("profile reassigned")
		return recomputeLocked(ctx, uc.params, uc.log, products, purchases, events, product, now)
	})
}
