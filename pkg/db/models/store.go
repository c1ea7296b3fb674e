package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// Store is a single storefront belonging to a tenant.
type Store struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null"`
	Name        string            `gorm:"column:name;not null"`
	Slug        string            `gorm:"column:slug;not null;uniqueIndex:ux_stores_slug"`
	Status      enums.StoreStatus `gorm:"column:status;type:store_status;not null;default:'draft'"`
	Description *string           `gorm:"column:description"`
	LogoURL     *string           `gorm:"column:logo_url"`
	Currency    enums.Currency    `gorm:"column:currency;type:currency;not null;default:'KES'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
