package tenants

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// TenantDTO represents the tenant payload returned to clients.
type TenantDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipDTO exposes a user's role within a tenant.
type MembershipDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(tenant *models.Tenant) *TenantDTO {
	if tenant == nil {
		return nil
	}
	return &TenantDTO{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Slug:      tenant.Slug,
		Status:    tenant.Status.String(),
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

func MembershipFromModel(membership *models.TenantMembership) *MembershipDTO {
	if membership == nil {
		return nil
	}
	return &MembershipDTO{
		ID:        membership.ID,
		TenantID:  membership.TenantID,
		UserID:    membership.UserID,
		Role:      membership.Role.String(),
		CreatedAt: membership.CreatedAt,
	}
}
