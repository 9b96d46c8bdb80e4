package repository

import (
	"context"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// ConsumptionEventRepository is the persistence port for confirmed stock
// dispositions. Events are append-only.
type ConsumptionEventRepository interface {
	Create(ctx context.Context, event *entity.ConsumptionEvent) error

	// LastByProduct returns the most recent event for a product, or nil when
	// none exists.
	LastByProduct(ctx context.Context, productID string) (*entity.ConsumptionEvent, error)

	ListByProduct(ctx context.Context, productID string) ([]*entity.ConsumptionEvent, error)
}
