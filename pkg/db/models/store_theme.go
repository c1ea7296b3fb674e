package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/types"
)

// StoreTheme holds the resolved CSS custom-property map for a store.
// One row per store by convention.
type StoreTheme struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID          `gorm:"column:store_id;type:uuid;not null;uniqueIndex:ux_store_themes_store"`
	TemplateID   *uuid.UUID         `gorm:"column:template_id;type:uuid"`
	CSSVariables types.CSSVariables `gorm:"column:css_variables;type:jsonb;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
