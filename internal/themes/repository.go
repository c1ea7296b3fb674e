package themes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// Repository persists the one-per-store theme rows.
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

func (r *Repository) Create(ctx context.Context, theme *models.StoreTheme) (*models.StoreTheme, error) {
	if err := r.db.WithContext(ctx).Create(theme).Error; err != nil {
		return nil, err
	}
	return theme, nil
}

func (r *Repository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*models.StoreTheme, error) {
	var theme models.StoreTheme
	if err := r.db.WithContext(ctx).First(&theme, "store_id = ?", storeID).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *Repository) Save(ctx context.Context, theme *models.StoreTheme) (*models.StoreTheme, error) {
	if err := r.db.WithContext(ctx).Save(theme).Error; err != nil {
		return nil, err
	}
	return theme, nil
}
