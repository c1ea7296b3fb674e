package tenants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
)

// Repository wires tenant and membership persistence.
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

func (r *Repository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// CreateMembership records a user's role within a tenant.
func (r *Repository) CreateMembership(ctx context.Context, tenantID, userID uuid.UUID, role enums.MemberRole) (*models.TenantMembership, error) {
	membership := models.TenantMembership{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	}
	if err := r.db.WithContext(ctx).Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *Repository) FindMembership(ctx context.Context, tenantID, userID uuid.UUID) (*models.TenantMembership, error) {
	var membership models.TenantMembership
	err := r.db.WithContext(ctx).
		First(&membership, "tenant_id = ? AND user_id = ?", tenantID, userID).
		Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// UserHasRole reports whether the user holds one of the given roles in the tenant.
func (r *Repository) UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMemberships returns all memberships for the user, newest first.
func (r *Repository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.TenantMembership, error) {
	var rows []models.TenantMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
