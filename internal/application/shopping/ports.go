package shopping

import (
	"context"

	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

// TxRunner executes a function against a transaction-bound shopping list
// repository. Generation must delete and re-insert auto items atomically so a
// reader never observes a half-replaced list.
type TxRunner interface {
	RunShopping(ctx context.Context, fn func(lists repository.ShoppingListRepository) error) error
}
