package templates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// DefaultTemplateSlug is the catalog entry used when a caller does not pick one.
const DefaultTemplateSlug = "default"

// Repository reads the template catalog. Templates are seeded by migration
// and never written through the API.
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

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).First(&template, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Template, error) {
	var rows []models.Template
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Create exists for seeding test fixtures; production templates come from migrations.
func (r *Repository) Create(ctx context.Context, template *models.Template) (*models.Template, error) {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return nil, err
	}
	return template, nil
}
