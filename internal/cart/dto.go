package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/pkg/db/models"
)

// CartDTO represents the quoted cart payload returned to clients.
type CartDTO struct {
	Token          string          `json:"token"`
	Status         string          `json:"status"`
	Items          []CartItemDTO   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	PackagingTotal decimal.Decimal `json:"packaging_total"`
	Total          decimal.Decimal `json:"total"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CartItemDTO snapshots one quoted line.
type CartItemDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Qty           int             `json:"qty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	Total         decimal.Decimal `json:"total"`
}

// NewCartDTO builds a DTO from the persisted cart.
func NewCartDTO(record *models.CartRecord) *CartDTO {
	dto := &CartDTO{
		Token:          record.Token,
		Status:         string(record.Status),
		Items:          make([]CartItemDTO, len(record.Items)),
		Subtotal:       record.Subtotal,
		PackagingTotal: record.PackagingTotal,
		Total:          record.Total,
		UpdatedAt:      record.UpdatedAt,
	}
	for i, item := range record.Items {
		dto.Items[i] = CartItemDTO{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Qty:           item.Qty,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal,
			PackagingCost: item.PackagingCost,
			Total:         item.Total,
		}
	}
	return dto
}
