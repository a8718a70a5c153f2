package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/internal/pricing"
	"github.com/printcraft/printshop-backend/pkg/db/models"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	Family           string          `json:"family"`
	Description      *string         `json:"description,omitempty"`
	FinishOptions    []string        `json:"finish_options"`
	MinOrderQty      int             `json:"min_order_qty"`
	PackagingFlat    decimal.Decimal `json:"packaging_flat"`
	PackagingPerUnit decimal.Decimal `json:"packaging_per_unit"`
	Legacy           bool            `json:"legacy"`
	IsActive         bool            `json:"is_active"`
	Tiers            []TierDTO       `json:"tiers"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TierDTO represents one quantity price break.
type TierDTO struct {
	MinQty       int             `json:"min_qty"`
	MaxQty       int             `json:"max_qty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               product.ID,
		Slug:             product.Slug,
		Name:             product.Name,
		Family:           string(product.Family),
		Description:      product.Description,
		FinishOptions:    append([]string{}, product.FinishOptions...),
		MinOrderQty:      product.MinOrderQty,
		PackagingFlat:    product.PackagingFlat,
		PackagingPerUnit: product.PackagingPerUnit,
		Legacy:           product.Legacy,
		IsActive:         product.IsActive,
		Tiers:            make([]TierDTO, len(product.Tiers)),
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
	for i, tier := range product.Tiers {
		dto.Tiers[i] = TierDTO{
			MinQty:       tier.MinQty,
			MaxQty:       tier.MaxQty,
			PricePerUnit: tier.PricePerUnit,
		}
	}
	return dto
}

// TierTable converts the persisted tier rows into the pricing engine's
// in-memory form, preserving position order.
func TierTable(product *models.Product) []pricing.Tier {
	tiers := make([]pricing.Tier, len(product.Tiers))
	for i, tier := range product.Tiers {
		tiers[i] = pricing.Tier{
			MinQty:       tier.MinQty,
			MaxQty:       tier.MaxQty,
			PricePerUnit: tier.PricePerUnit,
		}
	}
	return tiers
}

// PackagingPolicy extracts the product's packaging surcharge settings.
func PackagingPolicy(product *models.Product) pricing.PackagingPolicy {
	return pricing.PackagingPolicy{
		Flat:    product.PackagingFlat,
		PerUnit: product.PackagingPerUnit,
	}
}
