package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/types"
)

// Template is a read-only catalog entry seeding theme values and default
// page content for new stores.
type Template struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug                string              `gorm:"column:slug;not null;uniqueIndex:ux_templates_slug"`
	Name                string              `gorm:"column:name;not null"`
	DefaultCSSVariables types.CSSVariables  `gorm:"column:default_css_variables;type:jsonb"`
	DefaultHomePage     *types.PuckDocument `gorm:"column:default_home_page;type:jsonb"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
