package inventory

import (
	"context"

	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction. "Recompute, then persist derived fields" must be
// atomic relative to other writers of the same product; combined with the row
// lock taken via ProductRepository.GetForUpdate this is the engine's only
// serialization point.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
		events repository.ConsumptionEventRepository,
	) error) error
}
