package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// Product is a storefront listing. Pricing lives on variants; every product
// has at least one.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID           `gorm:"column:store_id;type:uuid;not null;uniqueIndex:ux_products_store_slug"`
	Title       string              `gorm:"column:title;not null"`
	Slug        string              `gorm:"column:slug;not null;uniqueIndex:ux_products_store_slug"`
	Description *string             `gorm:"column:description"`
	Status      enums.ProductStatus `gorm:"column:status;type:product_status;not null;default:'active'"`
	Source      enums.ProductSource `gorm:"column:source;type:product_source;not null;default:'manual'"`
	Tags        pq.StringArray      `gorm:"column:tags;type:text[]"`
	Variants    []ProductVariant    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Media       []ProductMedia      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
