package tenants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/dbtest"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/outbox"
)

func newTenantsService(t *testing.T, client *db.Client) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(client.DB()), logg)
	svc, err := NewService(NewRepository(client.DB()), client, events)
	require.NoError(t, err)
	return svc
}

func TestCreateTenantCreatesOwnerMembership(t *testing.T) {
	client := dbtest.Open(t)
	svc := newTenantsService(t, client)
	ownerID := uuid.New()

	tenant, err := svc.CreateTenant(context.Background(), ownerID, CreateTenantInput{
		Name: "Mama Mboga Ltd",
	})
	require.NoError(t, err)
	assert.Equal(t, "mama-mboga-ltd", tenant.Slug)
	assert.Equal(t, enums.TenantStatusActive.String(), tenant.Status)

	var membership models.TenantMembership
	require.NoError(t, client.DB().
		First(&membership, "tenant_id = ? AND user_id = ?", tenant.ID, ownerID).Error)
	assert.Equal(t, enums.MemberRoleOwner, membership.Role)

	var eventCount int64
	require.NoError(t, client.DB().Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.OutboxEventTenantCreated).Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)
}

func TestCreateTenantDuplicateSlugConflict(t *testing.T) {
	client := dbtest.Open(t)
	svc := newTenantsService(t, client)

	input := CreateTenantInput{Name: "Duka Moja", Slug: "duka-moja"}
	_, err := svc.CreateTenant(context.Background(), uuid.New(), input)
	require.NoError(t, err)

	_, err = svc.CreateTenant(context.Background(), uuid.New(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// The failed attempt must not leave a membership behind.
	var memberships int64
	require.NoError(t, client.DB().Model(&models.TenantMembership{}).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)
}

func TestCreateTenantInvalidSlug(t *testing.T) {
	client := dbtest.Open(t)
	svc := newTenantsService(t, client)

	_, err := svc.CreateTenant(context.Background(), uuid.New(), CreateTenantInput{
		Name: "Bad Slug",
		Slug: "Bad Slug!",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetTenantNonMemberForbidden(t *testing.T) {
	client := dbtest.Open(t)
	svc := newTenantsService(t, client)

	tenant, err := svc.CreateTenant(context.Background(), uuid.New(), CreateTenantInput{Name: "Private"})
	require.NoError(t, err)

	_, err = svc.GetTenant(context.Background(), tenant.ID, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestListUserTenants(t *testing.T) {
	client := dbtest.Open(t)
	svc := newTenantsService(t, client)
	ownerID := uuid.New()

	_, err := svc.CreateTenant(context.Background(), ownerID, CreateTenantInput{Name: "First Duka"})
	require.NoError(t, err)
	_, err = svc.CreateTenant(context.Background(), ownerID, CreateTenantInput{Name: "Second Duka"})
	require.NoError(t, err)

	memberships, err := svc.ListUserTenants(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	for _, m := range memberships {
		assert.Equal(t, enums.MemberRoleOwner.String(), m.Role)
		assert.Equal(t, ownerID, m.UserID)
	}
}
