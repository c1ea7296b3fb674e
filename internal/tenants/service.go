package tenants

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/outbox/payloads"
	slugpkg "github.com/dukahq/duka-backend/pkg/slug"
)

// CreateTenantInput holds the validated payload to create a tenant.
type CreateTenantInput struct {
	Name string
	Slug string
}

// Service exposes tenant account operations.
type Service interface {
	CreateTenant(ctx context.Context, ownerUserID uuid.UUID, input CreateTenantInput) (*TenantDTO, error)
	GetTenant(ctx context.Context, tenantID, userID uuid.UUID) (*TenantDTO, error)
	ListUserTenants(ctx context.Context, userID uuid.UUID) ([]MembershipDTO, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	events   eventEmitter
}

// NewService constructs a tenant service instance.
func NewService(repo *Repository, dbClient *db.Client, events eventEmitter) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant repository required")
	}
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db client required")
	}
	if events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event emitter required")
	}
	return &service{repo: repo, dbClient: dbClient, events: events}, nil
}

// CreateTenant creates the tenant and its owner membership in one transaction.
func (s *service) CreateTenant(ctx context.Context, ownerUserID uuid.UUID, input CreateTenantInput) (*TenantDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if ownerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner user id is required")
	}

	tenantSlug := strings.TrimSpace(input.Slug)
	if tenantSlug == "" {
		tenantSlug = slugpkg.Make(name)
	}
	if !slugpkg.IsValid(tenantSlug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must contain only lowercase letters, digits, and hyphens")
	}

	var created *models.Tenant
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		tenant, err := repo.Create(ctx, &models.Tenant{
			Name:   name,
			Slug:   tenantSlug,
			Status: enums.TenantStatusActive,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "ux_tenants_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "tenant slug already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}

		if _, err := repo.CreateMembership(ctx, tenant.ID, ownerUserID, enums.MemberRoleOwner); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create owner membership")
		}

		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventTenantCreated,
			AggregateType: enums.OutboxAggregateTenant,
			AggregateID:   tenant.ID,
			Actor:         &outbox.ActorRef{UserID: ownerUserID, Role: enums.MemberRoleOwner.String()},
			Data: payloads.TenantCreatedEvent{
				TenantID:    tenant.ID,
				Name:        tenant.Name,
				Slug:        tenant.Slug,
				OwnerUserID: ownerUserID,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit tenant.created")
		}

		created = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

// GetTenant loads a tenant the user belongs to.
func (s *service) GetTenant(ctx context.Context, tenantID, userID uuid.UUID) (*TenantDTO, error) {
	if _, err := s.repo.FindMembership(ctx, tenantID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this tenant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
	}

	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}
	return FromModel(tenant), nil
}

// ListUserTenants returns the memberships for a user.
func (s *service) ListUserTenants(ctx context.Context, userID uuid.UUID) ([]MembershipDTO, error) {
	rows, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list memberships")
	}
	out := make([]MembershipDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *MembershipFromModel(&rows[i]))
	}
	return out, nil
}
