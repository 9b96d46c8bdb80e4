package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/pantry-api/internal/application/dto"
	"github.com/jhoicas/pantry-api/internal/domain"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

var titleCaser = cases.Title(language.English)

// RecordPurchaseUseCase appends a confirmed purchase and recomputes the
// product's derived state, all in one transaction. Products are created on
// first sight of an unseen name; receipt aliases accumulate on the product so
// later dedup keeps working.
type RecordPurchaseUseCase struct {
	txRunner TxRunner
	params   velocity.Params
	log      *logger.Logger
	now      func() time.Time
}

// NewRecordPurchaseUseCase builds the use case. nowFn may be nil (wall clock).
func NewRecordPurchaseUseCase(txRunner TxRunner, params velocity.Params, log *logger.Logger, nowFn func() time.Time) *RecordPurchaseUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &RecordPurchaseUseCase{txRunner: txRunner, params: params, log: log, now: nowFn}
}

// Record validates and persists one purchase line item. Invalid purchases
// (non-positive quantity, future date) are rejected here, at the write
// boundary, so the engine only ever sees valid history.
func (uc *RecordPurchaseUseCase) Record(ctx context.Context, in dto.RecordPurchaseRequest) (string, error) {
	now := uc.now()

	if !in.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrNonPositiveQty
	}
	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = now
	}
	if in.PurchaseDate.After(now) {
		return "", domain.ErrFuturePurchase
	}
	if in.ProductID == "" && strings.TrimSpace(in.RawName) == "" && strings.TrimSpace(in.CanonicalName) == "" {
		return "", domain.ErrInvalidInput
	}

	var productID string
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
		events repository.ConsumptionEventRepository,
	) error {
		product, err := uc.resolveProduct(ctx, products, in, now)
		if err != nil {
			return err
		}
		productID = product.ID

		purchase := &entity.Purchase{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			PurchaseDate:  in.PurchaseDate,
			Quantity:      in.Quantity,
			Price:         in.Price,
			ReceiptID:     in.ReceiptID,
			OCRConfidence: in.OCRConfidence,
			RawOCRLine:    in.RawOCRLine,
			CreatedAt:     now,
		}
		if err := purchases.Create(ctx, purchase); err != nil {
			return err
		}

		return recomputeLocked(ctx, uc.params, uc.log, products, purchases, events, product, now)
	})
	if err != nil {
		return "", err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("quantity", in.Quantity.String()).
		Msg("purchase recorded")
	return productID, nil
}

// resolveProduct finds the target product and locks its row, creating it first
// when the name has never been seen. Either way the returned product row is
// locked in the current transaction.
func (uc *RecordPurchaseUseCase) resolveProduct(
	ctx context.Context,
	products repository.ProductRepository,
	in dto.RecordPurchaseRequest,
	now time.Time,
) (*entity.Product, error) {
	if in.ProductID != "" {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if in.RawName != "" && !product.HasAlias(in.RawName) {
			if err := products.AddAlias(ctx, product.ID, in.RawName); err != nil {
				return nil, err
			}
		}
		return product, nil
	}

	canonical := canonicalName(in.CanonicalName, in.RawName)
	existing, err := products.GetByCanonicalName(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		product, err := products.GetForUpdate(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if in.RawName != "" && !product.HasAlias(in.RawName) {
			if err := products.AddAlias(ctx, product.ID, in.RawName); err != nil {
				return nil, err
			}
		}
		return product, nil
	}

	profile := entity.ConsumptionProfile(in.Profile)
	if !profile.Valid() {
		// The external classifier tags every confirmed item; a missing tag on a
		// brand-new product is a caller bug.
		return nil, domain.ErrInvalidInput
	}

	product := &entity.Product{
		ID:              uuid.New().String(),
		CanonicalName:   canonical,
		Category:        in.Category,
		Profile:         profile,
		UnitType:        in.UnitType,
		UnitQuantity:    in.UnitQuantity,
		InventoryStatus: entity.StatusCalibrating,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.RawName != "" {
		product.RawNames = []string{in.RawName}
	}
	if err := products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", canonical).Msg("product created on first purchase")

	// Lock the fresh row so the purchase insert and recompute follow the same
	// discipline as the existing-product path.
	return products.GetForUpdate(ctx, product.ID)
}

// canonicalName normalizes a display name: trimmed, collapsed whitespace,
// title-cased so "ORGANIC MILK 2%" and "organic milk 2%" dedupe to one product.
func canonicalName(canonical, raw string) string {
	name := strings.TrimSpace(canonical)
	if name == "" {
		name = strings.TrimSpace(raw)
	}
	name = strings.Join(strings.Fields(name), " ")
	return titleCaser.String(strings.ToLower(name))
}
