package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/pagination"
)

// Repository wires together product, variant, inventory, and media-link
// persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the product together with its variant and inventory
// associations.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product with variants, inventory, and media links.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variants.Inventory").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Save updates the product row itself (not associations).
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Variants", "Media").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product; variants, inventory, and media links cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListIDsByStore returns every product id owned by the store.
func (r *Repository) ListIDsByStore(ctx context.Context, storeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ?", storeID).
		Pluck("id", &ids).Error
	return ids, err
}

// SlugExists reports whether the slug is already used within the store.
func (r *Repository) SlugExists(ctx context.Context, storeID uuid.UUID, productSlug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ? AND slug = ?", storeID, productSlug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListResult carries one page of products plus the cursor for the next.
type ListResult struct {
	Products   []models.Product
	NextCursor string
}

// ListByStore returns a cursor-paginated page of store products, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variants.Inventory").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("store_id = ?", storeID)

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	err = qb.Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Products: rows, NextCursor: nextCursor}, nil
}

// ReplaceMediaLinks replaces the product's media links.
func (r *Repository) ReplaceMediaLinks(ctx context.Context, productID uuid.UUID, links []models.ProductMedia) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductMedia{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// UpsertInventory creates or updates the inventory row for a variant.
func (r *Repository) UpsertInventory(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindVariant loads one variant with its inventory.
func (r *Repository) FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		First(&variant, "id = ?", variantID).
		Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// SaveVariant updates a variant row.
func (r *Repository) SaveVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Omit("Inventory").Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// TouchUpdatedAt bumps the product row after association-only writes.
func (r *Repository) TouchUpdatedAt(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("updated_at", time.Now()).Error
}
