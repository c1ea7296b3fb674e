package media

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// DefaultContentType is assumed when an upload does not declare one.
const DefaultContentType = "image/jpeg"

// Repository persists media asset rows. Blobs live with the external
// storage provider; we only track URL metadata.
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

func (r *Repository) Create(ctx context.Context, row *models.Media) (*models.Media, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var row models.Media
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Media
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Media, error) {
	var rows []models.Media
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Media{}).Error
}
