package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

var _ repository.ConsumptionEventRepository = (*ConsumptionEventRepo)(nil)

// ConsumptionEventRepo implements the ConsumptionEventRepository port on PostgreSQL.
type ConsumptionEventRepo struct {
	q Querier
}

// NewConsumptionEventRepository builds the adapter. Pass pool or tx (Querier).
func NewConsumptionEventRepository(q Querier) *ConsumptionEventRepo {
	return &ConsumptionEventRepo{q: q}
}

// Create appends one consumption event.
func (r *ConsumptionEventRepo) Create(ctx context.Context, e *entity.ConsumptionEvent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO consumption_events (id, product_id, kind, quantity, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProductID, e.Kind, e.Quantity, e.OccurredAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption event: %w", err)
	}
	return nil
}

// LastByProduct returns the most recent event, nil when none exists.
func (r *ConsumptionEventRepo) LastByProduct(ctx context.Context, productID string) (*entity.ConsumptionEvent, error) {
	var e entity.ConsumptionEvent
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, kind, quantity, occurred_at, created_at
		FROM consumption_events
		WHERE product_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT 1`,
		productID,
	).Scan(&e.ID, &e.ProductID, &e.Kind, &e.Quantity, &e.OccurredAt, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last consumption event: %w", err)
	}
	return &e, nil
}

// ListByProduct returns events oldest-first.
func (r *ConsumptionEventRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ConsumptionEvent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, kind, quantity, occurred_at, created_at
		FROM consumption_events
		WHERE product_id = $1
		ORDER BY occurred_at, id`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list consumption events: %w", err)
	}
	defer rows.Close()

	var list []*entity.ConsumptionEvent
	for rows.Next() {
		var e entity.ConsumptionEvent
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Kind, &e.Quantity, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
