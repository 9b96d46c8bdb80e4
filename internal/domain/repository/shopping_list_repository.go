package repository

import (
	"context"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
)

// ShoppingListRepository is the persistence port for shopping lists and items.
type ShoppingListRepository interface {
	CreateList(ctx context.Context, list *entity.ShoppingList) error
	GetList(ctx context.Context, id string) (*entity.ShoppingList, error)
	ListLists(ctx context.Context) ([]*entity.ShoppingList, error)
	DeleteList(ctx context.Context, id string) error

	ListItems(ctx context.Context, listID string) ([]*entity.ShoppingListItem, error)
	AddItem(ctx context.Context, item *entity.ShoppingListItem) error
	UpdateItem(ctx context.Context, item *entity.ShoppingListItem) error
	DeleteItem(ctx context.Context, listID, itemID string) error

	// DeleteAutoItems removes every source=auto row of a list; manual rows are
	// never touched. Paired with AddItem inside one transaction this implements
	// the wholesale replace-on-regeneration policy.
	DeleteAutoItems(ctx context.Context, listID string) error
}
