package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/application/shopping"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ shopping.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, executes fn with repositories bound to it and
// commits, or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	events repository.ConsumptionEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewPurchaseRepository(tx), NewConsumptionEventRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunShopping starts a transaction with the shopping list repository (for the
// atomic delete-then-insert of auto items during generation).
func (r *TxRunner) RunShopping(ctx context.Context, fn func(lists repository.ShoppingListRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewShoppingListRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
