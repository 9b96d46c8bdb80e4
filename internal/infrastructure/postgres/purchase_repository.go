package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implements the PurchaseRepository port on PostgreSQL (usable with pool or tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the persistence adapter for purchases. Pass pool or tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create appends one purchase. Purchases are immutable after creation.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, product_id, purchase_date, quantity, price,
			receipt_id, ocr_confidence, raw_ocr_line, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.PurchaseDate, p.Quantity, p.Price,
		p.ReceiptID, p.OCRConfidence, p.RawOCRLine, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// ListByProduct returns the full ordered history for one product. Date ties
// break by receipt id then row id so interval computation stays deterministic.
func (r *PurchaseRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Purchase, error) {
	query := `
		SELECT id, product_id, purchase_date, quantity, price,
			receipt_id, ocr_confidence, raw_ocr_line, created_at
		FROM purchases
		WHERE product_id = $1
		ORDER BY purchase_date, receipt_id NULLS LAST, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.PurchaseDate, &p.Quantity, &p.Price,
			&p.ReceiptID, &p.OCRConfidence, &p.RawOCRLine, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ModalQuantity returns the most common purchase quantity, zero when no history.
func (r *PurchaseRepo) ModalQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	var q decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT quantity FROM purchases
		WHERE product_id = $1
		GROUP BY quantity
		ORDER BY COUNT(*) DESC, quantity DESC
		LIMIT 1`,
		productID,
	).Scan(&q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("modal quantity: %w", err)
	}
	return q, nil
}
