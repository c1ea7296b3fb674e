package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// TenantMembership links a user with a tenant and captures their role.
type TenantMembership struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID        `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:ux_tenant_memberships_tenant_user"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_tenant_memberships_tenant_user"`
	Role      enums.MemberRole `gorm:"column:role;type:member_role;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
