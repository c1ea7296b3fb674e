package pages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// Repository persists store pages.
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

func (r *Repository) Create(ctx context.Context, page *models.StorePage) (*models.StorePage, error) {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StorePage, error) {
	var page models.StorePage
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Repository) FindByStoreAndSlug(ctx context.Context, storeID uuid.UUID, slug string) (*models.StorePage, error) {
	var page models.StorePage
	err := r.db.WithContext(ctx).
		First(&page, "store_id = ? AND slug = ?", storeID, slug).
		Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StorePage, error) {
	var rows []models.StorePage
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListPublishedByStore returns pages visible on the public storefront.
func (r *Repository) ListPublishedByStore(ctx context.Context, storeID uuid.UUID) ([]models.StorePage, error) {
	var rows []models.StorePage
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_published = ?", storeID, true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Save(ctx context.Context, page *models.StorePage) (*models.StorePage, error) {
	if err := r.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StorePage{}).Error
}
