package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
	"github.com/dukahq/duka-backend/pkg/types"
)

// StorePage is a content document addressable by slug within a store.
// Draft and published content are tracked independently.
type StorePage struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID           `gorm:"column:store_id;type:uuid;not null;uniqueIndex:ux_store_pages_store_slug"`
	Slug              string              `gorm:"column:slug;not null;uniqueIndex:ux_store_pages_store_slug"`
	Title             string              `gorm:"column:title;not null"`
	Type              enums.PageType      `gorm:"column:type;type:page_type;not null"`
	IsSystem          bool                `gorm:"column:is_system;not null;default:false"`
	PuckData          types.PuckDocument  `gorm:"column:puck_data;type:jsonb;not null"`
	IsPublished       bool                `gorm:"column:is_published;not null;default:false"`
	PublishedPuckData *types.PuckDocument `gorm:"column:published_puck_data;type:jsonb"`
	PublishedAt       *time.Time          `gorm:"column:published_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
