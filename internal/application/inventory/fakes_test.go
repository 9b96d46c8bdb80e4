package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// memStore is one in-memory backing store shared by the fake repositories, the
// way the real ones share one database. No rollback semantics: use cases under
// test either validate before writing or the test asserts the happy path.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	purchases []*entity.Purchase
	events    []*entity.ConsumptionEvent
	settings  map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		settings: map[string]string{},
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func day(n int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.RawNames = append([]string(nil), p.RawNames...)
	if p.CurrentStockEstimate != nil {
		v := *p.CurrentStockEstimate
		cp.CurrentStockEstimate = &v
	}
	if p.PredictedOutDate != nil {
		t := *p.PredictedOutDate
		cp.PredictedOutDate = &t
	}
	if p.ReconciledAt != nil {
		t := *p.ReconciledAt
		cp.ReconciledAt = &t
	}
	return &cp
}

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *fakeProductRepo) GetByCanonicalName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CanonicalName == name {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) ListIDsAfter(_ context.Context, afterID string, limit int) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *fakeProductRepo) FindStale(_ context.Context, now time.Time) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.PredictedOutDate == nil || !p.PredictedOutDate.Before(now) {
			continue
		}
		if p.ReconciledAt != nil && p.ReconciledAt.After(*p.PredictedOutDate) {
			continue
		}
		if r.hasActivityAfter(p.ID, *p.PredictedOutDate) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) hasActivityAfter(productID string, t time.Time) bool {
	for _, pur := range r.s.purchases {
		if pur.ProductID == productID && pur.PurchaseDate.After(t) {
			return true
		}
	}
	for _, ev := range r.s.events {
		if ev.ProductID == productID && ev.OccurredAt.After(t) {
			return true
		}
	}
	return false
}

func (r *fakeProductRepo) AddAlias(_ context.Context, id, rawName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	if p != nil && !p.HasAlias(rawName) {
		p.RawNames = append(p.RawNames, rawName)
	}
	return nil
}

func (r *fakeProductRepo) UpdateProfile(_ context.Context, id string, profile entity.ConsumptionProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.products[id]; p != nil {
		p.Profile = profile
	}
	return nil
}

func (r *fakeProductRepo) IncrementConsumed(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.products[id]; p != nil {
		p.TimesConsumed++
	}
	return nil
}

func (r *fakeProductRepo) IncrementWasted(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.products[id]; p != nil {
		p.TimesWasted++
	}
	return nil
}

func (r *fakeProductRepo) SetReconciledAt(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.products[id]; p != nil {
		t := at
		p.ReconciledAt = &t
	}
	return nil
}

func (r *fakeProductRepo) UpdateDerived(_ context.Context, id string, status entity.InventoryStatus, stock *float64, predictedOut *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	if p == nil {
		return nil
	}
	p.InventoryStatus = status
	p.CurrentStockEstimate = stock
	p.PredictedOutDate = predictedOut
	return nil
}

type fakePurchaseRepo struct{ s *memStore }

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.purchases = append(r.s.purchases, &cp)
	return nil
}

func (r *fakePurchaseRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.ProductID == productID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (r *fakePurchaseRepo) ModalQuantity(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
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

type fakeEventRepo struct{ s *memStore }

var _ repository.ConsumptionEventRepository = (*fakeEventRepo)(nil)

func (r *fakeEventRepo) Create(_ context.Context, e *entity.ConsumptionEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ce := *e
	r.s.events = append(r.s.events, &ce)
	return nil
}

func (r *fakeEventRepo) LastByProduct(_ context.Context, productID string) (*entity.ConsumptionEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var last *entity.ConsumptionEvent
	for _, e := range r.s.events {
		if e.ProductID != productID {
			continue
		}
		if last == nil || !e.OccurredAt.Before(last.OccurredAt) {
			last = e
		}
	}
	if last == nil {
		return nil, nil
	}
	ce := *last
	return &ce, nil
}

func (r *fakeEventRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ConsumptionEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ConsumptionEvent
	for _, e := range r.s.events {
		if e.ProductID == productID {
			ce := *e
			out = append(out, &ce)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct{ s *memStore }

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.settings[key], nil
}

func (r *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}

// fakeTxRunner hands the transactional callback repositories bound to the
// shared store.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	events repository.ConsumptionEventRepository,
) error) error {
	return fn(&fakeProductRepo{r.s}, &fakePurchaseRepo{r.s}, &fakeEventRepo{r.s})
}

// seedProduct puts a product with n purchases (one every intervalDays starting
// at the given day, quantity qty) into the store and returns its id.
func seedProduct(s *memStore, id, name string, profile entity.ConsumptionProfile, startDay, intervalDays, n int, qty int64) string {
	p := &entity.Product{
		ID:              id,
		CanonicalName:   name,
		Profile:         profile,
		InventoryStatus: entity.StatusCalibrating,
		CreatedAt:       day(startDay),
		UpdatedAt:       day(startDay),
	}
	s.mu.Lock()
	s.products[id] = p
	for i := 0; i < n; i++ {
		s.purchases = append(s.purchases, &entity.Purchase{
			ID:           id + "-p" + string(rune('a'+i)),
			ProductID:    id,
			PurchaseDate: day(startDay + i*intervalDays),
			Quantity:     decimal.NewFromInt(qty),
			CreatedAt:    day(startDay + i*intervalDays),
		})
	}
	s.mu.Unlock()
	return id
}
