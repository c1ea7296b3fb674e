package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks on-hand quantity for a single variant.
type InventoryItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:ux_inventory_items_variant"`
	AvailableQty int       `gorm:"column:available_qty;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
