package shopping_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// shopStore backs the fake repositories. Shopping tests are sequential, so no
// locking is needed.
type shopStore struct {
	products  map[string]*entity.Product
	purchases []*entity.Purchase
	events    []*entity.ConsumptionEvent
	lists     map[string]*entity.ShoppingList
	items     []*entity.ShoppingListItem
}

func newShopStore() *shopStore {
	return &shopStore{
		products: map[string]*entity.Product{},
		lists:    map[string]*entity.ShoppingList{},
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func day(n int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// seedVelocityProduct adds a product with n purchases spaced intervalDays
// apart, all with the same quantity.
func seedVelocityProduct(s *shopStore, id, name, category string, profile entity.ConsumptionProfile, intervalDays, n int, qty int64, wasted, consumed int) {
	s.products[id] = &entity.Product{
		ID:            id,
		CanonicalName: name,
		Category:      category,
		Profile:       profile,
		TimesWasted:   wasted,
		TimesConsumed: consumed,
	}
	for i := 0; i < n; i++ {
		s.purchases = append(s.purchases, &entity.Purchase{
			ID:           id + "-p" + string(rune('a'+i)),
			ProductID:    id,
			PurchaseDate: day(i * intervalDays),
			Quantity:     decimal.NewFromInt(qty),
		})
	}
}

type fakeProductRepo struct{ s *shopStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *fakeProductRepo) GetByCanonicalName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CanonicalName == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) ListIDsAfter(context.Context, string, int) ([]string, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindStale(context.Context, time.Time) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AddAlias(context.Context, string, string) error        { return nil }
func (r *fakeProductRepo) IncrementConsumed(context.Context, string) error       { return nil }
func (r *fakeProductRepo) IncrementWasted(context.Context, string) error         { return nil }
func (r *fakeProductRepo) SetReconciledAt(context.Context, string, time.Time) error { return nil }

func (r *fakeProductRepo) UpdateProfile(_ context.Context, id string, profile entity.ConsumptionProfile) error {
	if p := r.s.products[id]; p != nil {
		p.Profile = profile
	}
	return nil
}

func (r *fakeProductRepo) UpdateDerived(_ context.Context, id string, status entity.InventoryStatus, stock *float64, predictedOut *time.Time) error {
	if p := r.s.products[id]; p != nil {
		p.InventoryStatus = status
		p.CurrentStockEstimate = stock
		p.PredictedOutDate = predictedOut
	}
	return nil
}

type fakePurchaseRepo struct{ s *shopStore }

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.purchases = append(r.s.purchases, p)
	return nil
}

func (r *fakePurchaseRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (r *fakePurchaseRepo) ModalQuantity(_ context.Context, productID string) (decimal.Decimal, error) {
	counts := map[string]int{}
	values := map[string]decimal.Decimal{}
	for _, p := range r.s.purchases {
		if p.ProductID == productID {
			k := p.Quantity.String()
			counts[k]++
			values[k] = p.Quantity
		}
	}
	best := decimal.Zero
	bestCount := 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && values[k].GreaterThan(best)) {
			best = values[k]
			bestCount = n
		}
	}
	return best, nil
}

type fakeEventRepo struct{ s *shopStore }

var _ repository.ConsumptionEventRepository = (*fakeEventRepo)(nil)

func (r *fakeEventRepo) Create(_ context.Context, e *entity.ConsumptionEvent) error {
	r.s.events = append(r.s.events, e)
	return nil
}

func (r *fakeEventRepo) LastByProduct(_ context.Context, productID string) (*entity.ConsumptionEvent, error) {
	var last *entity.ConsumptionEvent
	for _, e := range r.s.events {
		if e.ProductID == productID && (last == nil || !e.OccurredAt.Before(last.OccurredAt)) {
			last = e
		}
	}
	return last, nil
}

func (r *fakeEventRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ConsumptionEvent, error) {
	var out []*entity.ConsumptionEvent
	for _, e := range r.s.events {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeListRepo struct{ s *shopStore }

var _ repository.ShoppingListRepository = (*fakeListRepo)(nil)

func (r *fakeListRepo) CreateList(_ context.Context, l *entity.ShoppingList) error {
	r.s.lists[l.ID] = l
	return nil
}

func (r *fakeListRepo) GetList(_ context.Context, id string) (*entity.ShoppingList, error) {
	return r.s.lists[id], nil
}

func (r *fakeListRepo) ListLists(_ context.Context) ([]*entity.ShoppingList, error) {
	out := make([]*entity.ShoppingList, 0, len(r.s.lists))
	for _, l := range r.s.lists {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeListRepo) DeleteList(_ context.Context, id string) error {
	delete(r.s.lists, id)
	var kept []*entity.ShoppingListItem
	for _, it := range r.s.items {
		if it.ListID != id {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

func (r *fakeListRepo) ListItems(_ context.Context, listID string) ([]*entity.ShoppingListItem, error) {
	var out []*entity.ShoppingListItem
	for _, it := range r.s.items {
		if it.ListID == listID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeListRepo) AddItem(_ context.Context, item *entity.ShoppingListItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}

func (r *fakeListRepo) UpdateItem(_ context.Context, item *entity.ShoppingListItem) error {
	for i, it := range r.s.items {
		if it.ID == item.ID {
			r.s.items[i] = item
		}
	}
	return nil
}

func (r *fakeListRepo) DeleteItem(_ context.Context, listID, itemID string) error {
	var kept []*entity.ShoppingListItem
	for _, it := range r.s.items {
		if !(it.ListID == listID && it.ID == itemID) {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

func (r *fakeListRepo) DeleteAutoItems(_ context.Context, listID string) error {
	var kept []*entity.ShoppingListItem
	for _, it := range r.s.items {
		if !(it.ListID == listID && it.Source == entity.SourceAuto) {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

type fakeTxRunner struct{ s *shopStore }

func (r *fakeTxRunner) RunShopping(_ context.Context, fn func(lists repository.ShoppingListRepository) error) error {
	return fn(&fakeListRepo{r.s})
}
