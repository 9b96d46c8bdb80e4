package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, canonical_name, raw_names, category, consumption_profile,
	unit_type, unit_quantity, current_stock_estimate, predicted_out_date, inventory_status,
	times_consumed, times_wasted, reconciled_at, created_at, updated_at`

// ProductRepo implements the ProductRepository port on PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for products. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product. Derived fields start empty (calibrating).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, canonical_name, raw_names, category, consumption_profile,
			unit_type, unit_quantity, current_stock_estimate, predicted_out_date, inventory_status,
			times_consumed, times_wasted, reconciled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CanonicalName, p.RawNames, p.Category, p.Profile,
		p.UnitType, p.UnitQuantity, p.CurrentStockEstimate, p.PredictedOutDate, p.InventoryStatus,
		p.TimesConsumed, p.TimesWasted, p.ReconciledAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by id, nil when missing.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCanonicalName fetches a product by its deduplicated display name.
func (r *ProductRepo) GetByCanonicalName(ctx context.Context, name string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE canonical_name = $1`, name)
}

// GetForUpdate locks the product row for the current transaction.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.CanonicalName, &p.RawNames, &p.Category, &p.Profile,
		&p.UnitType, &p.UnitQuantity, &p.CurrentStockEstimate, &p.PredictedOutDate, &p.InventoryStatus,
		&p.TimesConsumed, &p.TimesWasted, &p.ReconciledAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns every product. Products are never hard-deleted, so this is the
// complete catalog.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY category, canonical_name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListIDsAfter pages product ids ascending for the checkpointed sweep.
func (r *ProductRepo) ListIDsAfter(ctx context.Context, afterID string, limit int) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id FROM products WHERE id > $1 ORDER BY id LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindStale returns products overdue per the model with no corroborating event
// since the predicted-out date.
func (r *ProductRepo) FindStale(ctx context.Context, now time.Time) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.predicted_out_date IS NOT NULL
		  AND p.predicted_out_date < $1
		  AND (p.reconciled_at IS NULL OR p.reconciled_at < p.predicted_out_date)
		  AND NOT EXISTS (
			SELECT 1 FROM purchases pu
			WHERE pu.product_id = p.id AND pu.purchase_date >= p.predicted_out_date)
		  AND NOT EXISTS (
			SELECT 1 FROM consumption_events ce
			WHERE ce.product_id = p.id AND ce.occurred_at >= p.predicted_out_date)
		ORDER BY p.predicted_out_date`
	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("find stale products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// AddAlias appends a receipt alias if not already present.
func (r *ProductRepo) AddAlias(ctx context.Context, id, rawName string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET raw_names = array_append(COALESCE(raw_names, '{}'), $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(COALESCE(raw_names, '{}')))`,
		id, rawName,
	)
	if err != nil {
		return fmt.Errorf("add product alias: %w", err)
	}
	return nil
}

// UpdateProfile applies an explicit reclassification.
func (r *ProductRepo) UpdateProfile(ctx context.Context, id string, profile entity.ConsumptionProfile) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET consumption_profile = $2, updated_at = now() WHERE id = $1`,
		id, profile,
	)
	if err != nil {
		return fmt.Errorf("update product profile: %w", err)
	}
	return nil
}

// IncrementConsumed bumps the monotone consumed counter.
func (r *ProductRepo) IncrementConsumed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET times_consumed = times_consumed + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment consumed: %w", err)
	}
	return nil
}

// IncrementWasted bumps the monotone wasted counter.
func (r *ProductRepo) IncrementWasted(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET times_wasted = times_wasted + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment wasted: %w", err)
	}
	return nil
}

// SetReconciledAt writes the synthetic calibration anchor.
func (r *ProductRepo) SetReconciledAt(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET reconciled_at = $2, updated_at = now() WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("set reconciled at: %w", err)
	}
	return nil
}

// UpdateDerived persists the recompute output (used only by the velocity engine).
func (r *ProductRepo) UpdateDerived(ctx context.Context, id string, status entity.InventoryStatus, stock *float64, predictedOut *time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET inventory_status = $2, current_stock_estimate = $3, predicted_out_date = $4, updated_at = now()
		WHERE id = $1`,
		id, status, stock, predictedOut,
	)
	if err != nil {
		return fmt.Errorf("update derived fields: %w", err)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CanonicalName, &p.RawNames, &p.Category, &p.Profile,
			&p.UnitType, &p.UnitQuantity, &p.CurrentStockEstimate, &p.PredictedOutDate, &p.InventoryStatus,
			&p.TimesConsumed, &p.TimesWasted, &p.ReconciledAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
