package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// Media is an uploaded asset referenced by URL; the blob itself lives with
// the external storage provider.
type Media struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	Kind        enums.MediaKind `gorm:"column:kind;type:media_kind;not null"`
	URL         string          `gorm:"column:url;not null"`
	ContentType string          `gorm:"column:content_type;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
