package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreSettings is the one-to-one settings row created empty alongside a
// store; fields fill in later through the dashboard.
type StoreSettings struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:ux_store_settings_store"`
	ContactEmail    *string   `gorm:"column:contact_email"`
	SupportPhone    *string   `gorm:"column:support_phone"`
	CheckoutMessage *string   `gorm:"column:checkout_message"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
