package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/pkg/enums"
)

// Product is a catalog listing priced through its tier table. Legacy
// stationery lines set Legacy and are priced by the static price book
// instead.
type Product struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug             string              `gorm:"column:slug;uniqueIndex;not null"`
	Name             string              `gorm:"column:name;not null"`
	Family           enums.ProductFamily `gorm:"column:family;type:text;not null"`
	Description      *string             `gorm:"column:description"`
	FinishOptions    pq.StringArray      `gorm:"column:finish_options;type:text[];not null;default:ARRAY[]::text[]"`
	MinOrderQty      int                 `gorm:"column:min_order_qty;not null;default:1"`
	PackagingFlat    decimal.Decimal     `gorm:"column:packaging_flat;type:numeric(12,2);not null;default:0"`
	PackagingPerUnit decimal.Decimal     `gorm:"column:packaging_per_unit;type:numeric(12,4);not null;default:0"`
	Legacy           bool                `gorm:"column:legacy;not null;default:false"`
	IsActive         bool                `gorm:"column:is_active;not null;default:true"`
	Tiers            []PricingTier       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// PricingTier is one quantity price break in a product's tier table. The
// table is replaced wholesale on product updates; the pricing engine only
// reads it. MaxQty zero marks an open-ended final tier.
type PricingTier struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	MinQty       int             `gorm:"column:min_qty;not null"`
	MaxQty       int             `gorm:"column:max_qty;not null;default:0"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,4);not null"`
	Position     int             `gorm:"column:position;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
