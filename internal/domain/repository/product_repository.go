package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// ProductRepository is the persistence port for products. Derived fields
// (stock estimate, status, predicted-out date) go through UpdateDerived only,
// so they stay a cache of event history rather than a second source of truth.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCanonicalName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)

	// GetForUpdate locks the product row (SELECT FOR UPDATE). Only meaningful
	// inside a transaction; it is the per-product serialization point between
	// concurrent writers.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)

	// ListIDsAfter pages product ids in ascending order for the checkpointed
	// sweep. afterID may be empty to start from the beginning.
	ListIDsAfter(ctx context.Context, afterID string, limit int) ([]string, error)

	// FindStale returns products whose predicted-out date has passed with no
	// purchase, consumption event or reconciliation anchor since.
	FindStale(ctx context.Context, now time.Time) ([]*entity.Product, error)

	AddAlias(ctx context.Context, id, rawName string) error
	UpdateProfile(ctx context.Context, id string, profile entity.ConsumptionProfile) error
	IncrementConsumed(ctx context.Context, id string) error
	IncrementWasted(ctx context.Context, id string) error
	SetReconciledAt(ctx context.Context, id string, at time.Time) error

	UpdateDerived(ctx context.Context, id string, status entity.InventoryStatus, stock *float64, predictedOut *time.Time) error
}
