package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/pkg/enums"
)

// CartRecord holds one shopper's cart, keyed by an opaque session token. Each
// line stores the breakdown the pricing engine produced at quote time;
// checkout re-derives everything against the current tier tables before an
// order is created.
type CartRecord struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Token          string           `gorm:"column:token;uniqueIndex;not null"`
	Status         enums.CartStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Subtotal       decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	PackagingTotal decimal.Decimal  `gorm:"column:packaging_total;type:numeric(12,2);not null;default:0"`
	Total          decimal.Decimal  `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Items          []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem snapshots one quoted line.
type CartItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID        uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName   string          `gorm:"column:product_name;not null"`
	Qty           int             `gorm:"column:qty;not null"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(12,4);not null"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	PackagingCost decimal.Decimal `gorm:"column:packaging_cost;type:numeric(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
