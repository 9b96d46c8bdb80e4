package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

var _ repository.ShoppingListRepository = (*ShoppingListRepo)(nil)

// ShoppingListRepo implements the ShoppingListRepository port on PostgreSQL.
type ShoppingListRepo struct {
	q Querier
}

// NewShoppingListRepository builds the adapter. Pass pool or tx (Querier).
func NewShoppingListRepository(q Querier) *ShoppingListRepo {
	return &ShoppingListRepo{q: q}
}

// CreateList persists a new list.
func (r *ShoppingListRepo) CreateList(ctx context.Context, l *entity.ShoppingList) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shopping_lists (id, name, created_at, completed_at)
		VALUES ($1, $2, $3, $4)`,
		l.ID, l.Name, l.CreatedAt, l.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shopping list: %w", err)
	}
	return nil
}

// GetList fetches a list by id, nil when missing.
func (r *ShoppingListRepo) GetList(ctx context.Context, id string) (*entity.ShoppingList, error) {
	var l entity.ShoppingList
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, completed_at FROM shopping_lists WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shopping list: %w", err)
	}
	return &l, nil
}

// ListLists returns all lists, newest first.
func (r *ShoppingListRepo) ListLists(ctx context.Context) ([]*entity.ShoppingList, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, created_at, completed_at FROM shopping_lists ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	defer rows.Close()

	var list []*entity.ShoppingList
	for rows.Next() {
		var l entity.ShoppingList
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan shopping list: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteList removes a list and its items.
func (r *ShoppingListRepo) DeleteList(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shopping_list_items WHERE list_id = $1`, id); err != nil {
		return fmt.Errorf("delete list items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	return nil
}

// ListItems returns a list's items, unchecked first then insertion order.
func (r *ShoppingListRepo) ListItems(ctx context.Context, listID string) ([]*entity.ShoppingListItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, list_id, product_id, product_name, category, quantity, checked, source, created_at
		FROM shopping_list_items
		WHERE list_id = $1
		ORDER BY checked, created_at, id`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ShoppingListItem
	for rows.Next() {
		var it entity.ShoppingListItem
		if err := rows.Scan(
			&it.ID, &it.ListID, &it.ProductID, &it.ProductName, &it.Category,
			&it.Quantity, &it.Checked, &it.Source, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// AddItem persists one item.
func (r *ShoppingListRepo) AddItem(ctx context.Context, it *entity.ShoppingListItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shopping_list_items (id, list_id, product_id, product_name, category, quantity, checked, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		it.ID, it.ListID, it.ProductID, it.ProductName, it.Category,
		it.Quantity, it.Checked, it.Source, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem writes the mutable item fields.
func (r *ShoppingListRepo) UpdateItem(ctx context.Context, it *entity.ShoppingListItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE shopping_list_items
		SET product_name = $3, quantity = $4, checked = $5
		WHERE id = $1 AND list_id = $2`,
		it.ID, it.ListID, it.ProductName, it.Quantity, it.Checked,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes one item.
func (r *ShoppingListRepo) DeleteItem(ctx context.Context, listID, itemID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM shopping_list_items WHERE id = $2 AND list_id = $1`, listID, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteAutoItems removes every auto row of a list; manual rows are kept.
func (r *ShoppingListRepo) DeleteAutoItems(ctx context.Context, listID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM shopping_list_items WHERE list_id = $1 AND source = $2`,
		listID, entity.SourceAuto,
	)
	if err != nil {
		return fmt.Errorf("delete auto items: %w", err)
	}
	return nil
}
