package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// Tenant is the top-level account entity owning one or more stores.
type Tenant struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string             `gorm:"column:name;not null"`
	Slug      string             `gorm:"column:slug;not null;uniqueIndex:ux_tenants_slug"`
	Status    enums.TenantStatus `gorm:"column:status;type:tenant_status;not null;default:'active'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
