package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahq/duka-backend/pkg/enums"
	"github.com/dukahq/duka-backend/pkg/types"
)

// ProductVariant carries price and option values for a product.
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Title     string          `gorm:"column:title;not null"`
	SKU       *string         `gorm:"column:sku"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Currency  enums.Currency  `gorm:"column:currency;type:currency;not null;default:'KES'"`
	Options   types.JSONMap   `gorm:"column:options;type:jsonb"`
	Inventory *InventoryItem  `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
