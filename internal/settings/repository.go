package settings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// Repository persists the one-per-store settings rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, row *models.StoreSettings) (*models.StoreSettings, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*models.StoreSettings, error) {
	var row models.StoreSettings
	if err := r.db.WithContext(ctx).First(&row, "store_id = ?", storeID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Save(ctx context.Context, row *models.StoreSettings) (*models.StoreSettings, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
