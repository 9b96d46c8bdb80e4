package shopping

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// GenerateUseCase builds the auto shopping list from velocity output. Every run
// replaces the previous auto items wholesale (delete then insert) and never
// touches manual items — a deliberate non-merge policy so users can trust that
// auto items reflect the latest run exactly.
type GenerateUseCase struct {
	query     *inventory.QueryUseCase
	purchases repository.PurchaseRepository
	lists     repository.ShoppingListRepository
	txRunner  TxRunner
	log       *logger.Logger
}

// NewGenerateUseCase builds the use case.
func NewGenerateUseCase(
	query *inventory.QueryUseCase,
	purchases repository.PurchaseRepository,
	lists repository.ShoppingListRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *GenerateUseCase {
	return &GenerateUseCase{query: query, purchases: purchases, lists: lists, txRunner: txRunner, log: log}
}

// Generate regenerates the auto items of a list from products currently low or
// out, most urgent first (ascending stock estimate) then grouped by category
// for aisle order. Suggested quantity is the product's most common historical
// purchase quantity scaled by the waste-feedback multiplier, rounded to the
// nearest purchasable unit, minimum 1.
func (uc *GenerateUseCase) Generate(ctx context.Context, listID string, now time.Time) (dto.GenerateResultDTO, error) {
	list, err := uc.lists.GetList(ctx, listID)
	if err != nil {
		return dto.GenerateResultDTO{}, err
	}
	if list == nil {
		return dto.GenerateResultDTO{}, domain.ErrNotFound
	}

	candidates, err := uc.query.ListLow(ctx, now)
	if err != nil {
		return dto.GenerateResultDTO{}, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := stockOrZero(candidates[i].StockEstimate), stockOrZero(candidates[j].StockEstimate)
		if si != sj {
			return si < sj
		}
		return candidates[i].Category < candidates[j].Category
	})

	items := make([]*entity.ShoppingListItem, 0, len(candidates))
	for _, c := range candidates {
		qty, err := uc.suggestedQuantity(ctx, c)
		if err != nil {
			return dto.GenerateResultDTO{}, err
		}
		productID := c.ProductID
		items = append(items, &entity.ShoppingListItem{
			ID:          uuid.New().String(),
			ListID:      listID,
			ProductID:   &productID,
			ProductName: c.Name,
			Category:    c.Category,
			Quantity:    qty,
			Source:      entity.SourceAuto,
			CreatedAt:   now,
		})
	}

	err = uc.txRunner.RunShopping(ctx, func(lists repository.ShoppingListRepository) error {
		if err := lists.DeleteAutoItems(ctx, listID); err != nil {
			return err
		}
		for _, item := range items {
			if err := lists.AddItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.GenerateResultDTO{}, err
	}

	uc.log.Info().Str("list_id", listID).Int("auto_items", len(items)).Msg("shopping list generated")
	return dto.GenerateResultDTO{ListID: listID, AutoItems: len(items)}, nil
}

// suggestedQuantity scales the modal historical purchase quantity by the
// waste-feedback multiplier. No purchase history (or a zero modal quantity)
// degrades to 1, never to an error.
func (uc *GenerateUseCase) suggestedQuantity(ctx context.Context, c dto.ProductVelocityDTO) (decimal.Decimal, error) {
	modal, err := uc.purchases.ModalQuantity(ctx, c.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	if !modal.GreaterThan(decimal.Zero) {
		return decimal.NewFromInt(1), nil
	}
	qty := modal.Mul(decimal.NewFromFloat(c.QuantityMultiplier)).Round(0)
	if !qty.GreaterThan(decimal.Zero) {
		qty = decimal.NewFromInt(1)
	}
	return qty, nil
}

func stockOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
