package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/pkg/db/models"
)

// OrderDTO represents the order payload returned to clients.
type OrderDTO struct {
	ID             uuid.UUID          `json:"id"`
	OrderNumber    int64              `json:"order_number"`
	Email          string             `json:"email"`
	Status         string             `json:"status"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	PackagingTotal decimal.Decimal    `json:"packaging_total"`
	Total          decimal.Decimal    `json:"total"`
	Items          []OrderLineItemDTO `json:"items"`
	CanceledAt     *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// OrderLineItemDTO snapshots one ordered line as priced at checkout.
type OrderLineItemDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Qty           int             `json:"qty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	Total         decimal.Decimal `json:"total"`
}

// NewOrderDTO builds a DTO from the persisted order.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Email:          order.Email,
		Status:         string(order.Status),
		Subtotal:       order.Subtotal,
		PackagingTotal: order.PackagingTotal,
		Total:          order.Total,
		Items:          make([]OrderLineItemDTO, len(order.Items)),
		CanceledAt:     order.CanceledAt,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for i, item := range order.Items {
		dto.Items[i] = OrderLineItemDTO{
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
