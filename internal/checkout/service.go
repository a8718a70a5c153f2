package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/internal/cart"
	"github.com/printcraft/printshop-backend/internal/orders"
	"github.com/printcraft/printshop-backend/internal/pricing"
	product "github.com/printcraft/printshop-backend/internal/products"
	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type confirmationNotifier interface {
	OrderConfirmed(ctx context.Context, order *orders.OrderDTO)
}

// Service converts a quoted cart into an order.
type Service interface {
	Execute(ctx context.Context, input CheckoutInput) (*orders.OrderDTO, error)
}

// CheckoutInput captures the data required to place an order.
type CheckoutInput struct {
	CartToken string
	Email     string
}

// PriceDrift reports one line whose quoted price no longer matches the
// current tier table. Returned as error details on price mismatch.
type PriceDrift struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Qty          int             `json:"qty"`
	QuotedPrice  decimal.Decimal `json:"quoted_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

type service struct {
	tx         txRunner
	cartRepo   cart.CartRepository
	ordersRepo orders.Repository
	products   productLoader
	notifier   confirmationNotifier
}

// NewService builds the checkout service. The notifier is optional.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo orders.Repository,
	products productLoader,
	notifier confirmationNotifier,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		products:   products,
		notifier:   notifier,
	}, nil
}

// Execute re-validates every quoted line against the current tier tables,
// then creates the order and marks the cart converted in one transaction.
// Lines whose quoted total drifted beyond the pricing tolerance abort the
// checkout with a price mismatch.
func (s *service) Execute(ctx context.Context, input CheckoutInput) (*orders.OrderDTO, error) {
	token := strings.TrimSpace(input.CartToken)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		record, err := cartRepo.FindActiveByToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
			}
			return err
		}
		if record.Status != enums.CartStatusActive {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart already processed")
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
		}

		drifts, err := s.detectPriceDrift(ctx, record.Items)
		if err != nil {
			return err
		}
		if len(drifts) > 0 {
			return pkgerrors.New(pkgerrors.CodePriceMismatch,
				"quoted prices no longer match the current price list").WithDetails(drifts)
		}

		order := &models.Order{
			CartID:         record.ID,
			Email:          email,
			Status:         enums.OrderStatusPending,
			Subtotal:       record.Subtotal,
			PackagingTotal: record.PackagingTotal,
			Total:          record.Total,
		}
		created, err := ordersRepo.Create(ctx, order)
		if err != nil {
			return err
		}

		lineItems := make([]models.OrderLineItem, len(record.Items))
		for i, item := range record.Items {
			lineItems[i] = models.OrderLineItem{
				OrderID:       created.ID,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Qty:           item.Qty,
				UnitPrice:     item.UnitPrice,
				Subtotal:      item.Subtotal,
				PackagingCost: item.PackagingCost,
				Total:         item.Total,
			}
		}
		if err := ordersRepo.CreateLineItems(ctx, lineItems); err != nil {
			return err
		}

		if err := cartRepo.UpdateStatus(ctx, record.ID, enums.CartStatusConverted); err != nil {
			return err
		}

		placed, err = ordersRepo.FindByID(ctx, created.ID)
		return err
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	dto := orders.NewOrderDTO(placed)
	if s.notifier != nil {
		s.notifier.OrderConfirmed(ctx, dto)
	}
	return dto, nil
}

// detectPriceDrift recomputes each quoted line against the product's current
// tier table and packaging policy.
func (s *service) detectPriceDrift(ctx context.Context, items []models.CartItem) ([]PriceDrift, error) {
	cache := map[uuid.UUID]*models.Product{}
	var drifts []PriceDrift

	for _, item := range items {
		row, ok := cache[item.ProductID]
		if !ok {
			var err error
			row, err = s.products.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeConflict, "a quoted product is no longer available")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			cache[item.ProductID] = row
		}
		if !row.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a quoted product is no longer available")
		}

		current := pricing.CalculateFinalPrice(item.Qty, product.TierTable(row), product.PackagingPolicy(row))
		if current.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeUnavailable, "no price available for this configuration")
		}
		if !pricing.WithinTolerance(item.Total, current.FinalPrice) {
			drifts = append(drifts, PriceDrift{
				ProductID:    item.ProductID,
				Qty:          item.Qty,
				QuotedPrice:  item.Total,
				CurrentPrice: current.FinalPrice,
			})
		}
	}
	return drifts, nil
}
