package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// PurchaseRepository is the persistence port for purchase events. Purchases are
// append-only: the interval calculation depends on the full ordered history.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error

	// ListByProduct returns purchases ordered ascending by purchase date, with
	// ties broken by receipt id then row id to keep interval computation
	// deterministic.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Purchase, error)

	// ModalQuantity returns the most common historical purchase quantity for a
	// product, or zero when the product has no purchases.
	ModalQuantity(ctx context.Context, productID string) (decimal.Decimal, error)
}
