package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/internal/pricing"
	product "github.com/printcraft/printshop-backend/internal/products"
	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart quoting and retrieval operations. All prices are
// recomputed server-side from the current tier tables; client-submitted
// amounts are never trusted.
type Service interface {
	QuoteCart(ctx context.Context, input QuoteInput) (*CartDTO, error)
	GetCart(ctx context.Context, token string) (*CartDTO, error)
}

// QuoteInput captures the payload required to quote and persist a cart.
// An empty Token starts a new cart session.
type QuoteInput struct {
	Token string
	Lines []QuoteLineInput
}

// QuoteLineInput identifies one requested line. Only the product and
// quantity are accepted; pricing comes from the server.
type QuoteLineInput struct {
	ProductID uuid.UUID
	Qty       int
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
	metrics  *metrics.PricingMetrics
}

// NewService builds a cart service backed by the provided stack. A nil
// metrics value disables instrumentation.
func NewService(repo CartRepository, tx txRunner, products productLoader, pm *metrics.PricingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products, metrics: pm}, nil
}

// QuoteCart prices every requested line against the current tier tables and
// persists the result as the session's active cart.
func (s *service) QuoteCart(ctx context.Context, input QuoteInput) (*CartDTO, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one line")
	}

	subtotal := decimal.Zero
	packagingTotal := decimal.Zero
	total := decimal.Zero
	items := make([]models.CartItem, 0, len(input.Lines))
	started := time.Now()

	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
		}
		if line.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
		}

		row, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !row.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
		}
		if row.Legacy {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "legacy products are priced through the price book")
		}
		if line.Qty < row.MinOrderQty {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("qty below minimum order quantity %d for %s", row.MinOrderQty, row.Slug))
		}

		breakdown := pricing.CalculateFinalPrice(line.Qty, product.TierTable(row), product.PackagingPolicy(row))
		if breakdown.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeUnavailable, "no price available for this configuration")
		}

		subtotal = subtotal.Add(breakdown.Subtotal)
		packagingTotal = packagingTotal.Add(breakdown.PackagingCost)
		total = total.Add(breakdown.FinalPrice)

		items = append(items, models.CartItem{
			ProductID:     row.ID,
			ProductName:   row.Name,
			Qty:           line.Qty,
			UnitPrice:     breakdown.UnitPrice,
			Subtotal:      breakdown.Subtotal,
			PackagingCost: breakdown.PackagingCost,
			Total:         breakdown.FinalPrice,
		})
	}
	s.metrics.ObserveQuote("cart", time.Since(started))

	token := input.Token
	if token == "" {
		token = uuid.NewString()
	}

	var saved *models.CartRecord
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindByToken(ctx, token)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch {
		case record == nil:
			record = &models.CartRecord{
				Token:          token,
				Status:         enums.CartStatusActive,
				Subtotal:       subtotal,
				PackagingTotal: packagingTotal,
				Total:          total,
			}
			if record, err = txRepo.Create(ctx, record); err != nil {
				return err
			}
		case record.Status != enums.CartStatusActive:
			// Tokens are single-use once checkout converts the cart.
			return pkgerrors.New(pkgerrors.CodeConflict,
				"cart session is no longer active; start a new cart")
		default:
			record.Subtotal = subtotal
			record.PackagingTotal = packagingTotal
			record.Total = total
			if _, err := txRepo.Update(ctx, record); err != nil {
				return err
			}
		}

		if err := txRepo.ReplaceItems(ctx, record.ID, items); err != nil {
			return err
		}

		saved, err = txRepo.FindByToken(ctx, token)
		return err
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}

	return NewCartDTO(saved), nil
}

// GetCart returns the cart for the session token.
func (s *service) GetCart(ctx context.Context, token string) (*CartDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	record, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return NewCartDTO(record), nil
}
