package shopping

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
)

// ListUseCase covers shopping list and manual item management.
type ListUseCase struct {
	lists repository.ShoppingListRepository
	now   func() time.Time
}

// NewListUseCase builds the use case. nowFn may be nil (wall clock).
func NewListUseCase(lists repository.ShoppingListRepository, nowFn func() time.Time) *ListUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &ListUseCase{lists: lists, now: nowFn}
}

// Create makes an empty list.
func (uc *ListUseCase) Create(ctx context.Context, in dto.CreateListRequest) (dto.ShoppingListDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Shopping List - " + uc.now().Format("Jan 02")
	}
	list := &entity.ShoppingList{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: uc.now(),
	}
	if err := uc.lists.CreateList(ctx, list); err != nil {
		return dto.ShoppingListDTO{}, err
	}
	return toListDTO(list, 0), nil
}

// List returns all lists with item counts.
func (uc *ListUseCase) List(ctx context.Context) ([]dto.ShoppingListDTO, error) {
	all, err := uc.lists.ListLists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShoppingListDTO, 0, len(all))
	for _, l := range all {
		items, err := uc.lists.ListItems(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toListDTO(l, len(items)))
	}
	return out, nil
}

// Get returns one list with its items, unchecked first.
func (uc *ListUseCase) Get(ctx context.Context, listID string) (dto.ShoppingListDTO, []dto.ShoppingListItemDTO, error) {
	list, err := uc.lists.GetList(ctx, listID)
	if err != nil {
		return dto.ShoppingListDTO{}, nil, err
	}
	if list == nil {
		return dto.ShoppingListDTO{}, nil, domain.ErrNotFound
	}
	items, err := uc.lists.ListItems(ctx, listID)
	if err != nil {
		return dto.ShoppingListDTO{}, nil, err
	}
	dtos := make([]dto.ShoppingListItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toItemDTO(it))
	}
	return toListDTO(list, len(items)), dtos, nil
}

// Delete removes a list and its items.
func (uc *ListUseCase) Delete(ctx context.Context, listID string) error {
	list, err := uc.lists.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return domain.ErrNotFound
	}
	return uc.lists.DeleteList(ctx, listID)
}

// AddItem appends a manual item. Manual items survive regeneration untouched.
func (uc *ListUseCase) AddItem(ctx context.Context, listID string, in dto.AddItemRequest) (dto.ShoppingListItemDTO, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return dto.ShoppingListItemDTO{}, domain.ErrInvalidInput
	}
	list, err := uc.lists.GetList(ctx, listID)
	if err != nil {
		return dto.ShoppingListItemDTO{}, err
	}
	if list == nil {
		return dto.ShoppingListItemDTO{}, domain.ErrNotFound
	}
	quantity := in.Quantity
	if !quantity.GreaterThan(decimal.Zero) {
		quantity = decimal.NewFromInt(1)
	}
	item := &entity.ShoppingListItem{
		ID:          uuid.New().String(),
		ListID:      listID,
		ProductID:   in.ProductID,
		ProductName: strings.TrimSpace(in.ProductName),
		Quantity:    quantity,
		Source:      entity.SourceManual,
		CreatedAt:   uc.now(),
	}
	if err := uc.lists.AddItem(ctx, item); err != nil {
		return dto.ShoppingListItemDTO{}, err
	}
	return toItemDTO(item), nil
}

// UpdateItem patches checked state, quantity or name of an item.
func (uc *ListUseCase) UpdateItem(ctx context.Context, listID, itemID string, in dto.UpdateItemRequest) (dto.ShoppingListItemDTO, error) {
	if in.Checked == nil && in.Quantity == nil && in.ProductName == nil {
		return dto.ShoppingListItemDTO{}, domain.ErrInvalidInput
	}
	items, err := uc.lists.ListItems(ctx, listID)
	if err != nil {
		return dto.ShoppingListItemDTO{}, err
	}
	var item *entity.ShoppingListItem
	for _, it := range items {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil {
		return dto.ShoppingListItemDTO{}, domain.ErrNotFound
	}
	if in.Checked != nil {
		item.Checked = *in.Checked
	}
	if in.Quantity != nil && in.Quantity.GreaterThan(decimal.Zero) {
		item.Quantity = *in.Quantity
	}
	if in.ProductName != nil && strings.TrimSpace(*in.ProductName) != "" {
		item.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if err := uc.lists.UpdateItem(ctx, item); err != nil {
		return dto.ShoppingListItemDTO{}, err
	}
	return toItemDTO(item), nil
}

// DeleteItem removes one item from a list.
func (uc *ListUseCase) DeleteItem(ctx context.Context, listID, itemID string) error {
	return uc.lists.DeleteItem(ctx, listID, itemID)
}

func toListDTO(l *entity.ShoppingList, itemCount int) dto.ShoppingListDTO {
	return dto.ShoppingListDTO{
		ID:          l.ID,
		Name:        l.Name,
		CreatedAt:   l.CreatedAt,
		CompletedAt: l.CompletedAt,
		ItemCount:   itemCount,
	}
}

func toItemDTO(it *entity.ShoppingListItem) dto.ShoppingListItemDTO {
	return dto.ShoppingListItemDTO{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Category:    it.Category,
		Quantity:    it.Quantity,
		Checked:     it.Checked,
		Source:      string(it.Source),
	}
}
