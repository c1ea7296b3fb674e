package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductMedia joins products to media with ordering and a featured flag.
type ProductMedia struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	MediaID    uuid.UUID `gorm:"column:media_id;type:uuid;not null"`
	Position   int       `gorm:"column:position;not null;default:0"`
	IsFeatured bool      `gorm:"column:is_featured;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
