package stores

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/settings"
	"github.com/dukahq/duka-backend/internal/templates"
	"github.com/dukahq/duka-backend/internal/tenants"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/dbtest"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/types"
)

type storesFixture struct {
	client   *db.Client
	svc      Service
	tenantID uuid.UUID
	ownerID  uuid.UUID
}

func newStoresFixture(t *testing.T) *storesFixture {
	t.Helper()
	client := dbtest.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(client.DB()), logg)

	svc, err := NewService(ServiceParams{
		Repo:         NewRepository(client.DB()),
		DB:           client,
		Memberships:  tenants.NewRepository(client.DB()),
		TemplateRepo: templates.NewRepository(client.DB()),
		ThemeRepo:    themes.NewRepository(client.DB()),
		PageRepo:     pages.NewRepository(client.DB()),
		SettingsRepo: settings.NewRepository(client.DB()),
		Events:       events,
	})
	require.NoError(t, err)

	tenant := models.Tenant{Name: "Biashara Group", Slug: "biashara-group", Status: enums.TenantStatusActive}
	require.NoError(t, client.DB().Create(&tenant).Error)

	ownerID := uuid.New()
	membership := models.TenantMembership{TenantID: tenant.ID, UserID: ownerID, Role: enums.MemberRoleOwner}
	require.NoError(t, client.DB().Create(&membership).Error)

	return &storesFixture{client: client, svc: svc, tenantID: tenant.ID, ownerID: ownerID}
}

func (f *storesFixture) seedTemplate(t *testing.T, slug string) *models.Template {
	t.Helper()
	home := types.PuckDocument{
		Content: []json.RawMessage{json.RawMessage(`{"type":"Hero","props":{"headline":"Karibu"}}`)},
		Root:    types.PuckRoot{Props: map[string]any{}},
		Zones:   map[string]json.RawMessage{},
	}
	template := models.Template{
		Slug:                slug,
		Name:                slug,
		DefaultCSSVariables: types.CSSVariables{"--primary": "#0f766e"},
		DefaultHomePage:     &home,
	}
	require.NoError(t, f.client.DB().Create(&template).Error)
	return &template
}

func TestCreateStoreProvisionsDefaults(t *testing.T) {
	f := newStoresFixture(t)

	store, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Letu",
	})
	require.NoError(t, err)
	assert.Equal(t, "soko-letu", store.Slug)
	assert.Equal(t, enums.StoreStatusDraft.String(), store.Status)
	assert.Equal(t, enums.CurrencyKES.String(), store.Currency)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", store.ID).Error)
	assert.Nil(t, theme.TemplateID, "no templates seeded, theme has no template layer")

	var home models.StorePage
	require.NoError(t, f.client.DB().First(&home, "store_id = ? AND slug = ?", store.ID, pages.HomeSlug).Error)
	assert.True(t, home.IsSystem)
	assert.Equal(t, enums.PageTypeHome, home.Type)
	assert.False(t, home.IsPublished)

	var settingsRow models.StoreSettings
	require.NoError(t, f.client.DB().First(&settingsRow, "store_id = ?", store.ID).Error)

	var eventCount int64
	require.NoError(t, f.client.DB().Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.OutboxEventStoreCreated).Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)
}

func TestCreateStoreAppliesTemplate(t *testing.T) {
	f := newStoresFixture(t)
	template := f.seedTemplate(t, "modern")

	store, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID:     f.tenantID,
		Name:         "Soko la Kisasa",
		TemplateSlug: "modern",
	})
	require.NoError(t, err)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", store.ID).Error)
	require.NotNil(t, theme.TemplateID)
	assert.Equal(t, template.ID, *theme.TemplateID)

	var home models.StorePage
	require.NoError(t, f.client.DB().First(&home, "store_id = ? AND slug = ?", store.ID, pages.HomeSlug).Error)
	require.NotEmpty(t, home.PuckData.Content)
	assert.Contains(t, string(home.PuckData.Content[0]), "Karibu")
}

func TestCreateStoreUnknownTemplateFallsBackToDefault(t *testing.T) {
	f := newStoresFixture(t)
	fallback := f.seedTemplate(t, templates.DefaultTemplateSlug)

	store, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID:     f.tenantID,
		Name:         "Soko Mbadala",
		TemplateSlug: "no-such-template",
	})
	require.NoError(t, err)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", store.ID).Error)
	require.NotNil(t, theme.TemplateID)
	assert.Equal(t, fallback.ID, *theme.TemplateID)
}

func TestCreateStoreAppliesVariableOverrides(t *testing.T) {
	f := newStoresFixture(t)
	f.seedTemplate(t, "modern")

	store, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID:     f.tenantID,
		Name:         "Soko la Rangi",
		TemplateSlug: "modern",
		CSSVariables: types.CSSVariables{"--primary": "#be123c", "--radius": "1rem"},
	})
	require.NoError(t, err)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", store.ID).Error)
	assert.Equal(t, "#be123c", theme.CSSVariables["--primary"])
	assert.Equal(t, "1rem", theme.CSSVariables["--radius"])

	// Overrides win over both the template layer and the builtins.
	storefront, err := f.svc.ResolveStorefront(context.Background(), store.Slug)
	require.NoError(t, err)
	assert.Equal(t, "#be123c", storefront.Theme["--primary"])
	assert.Equal(t, "1rem", storefront.Theme["--radius"])
	assert.Equal(t, themes.BuiltinDefaults()["--background"], storefront.Theme["--background"])
}

func TestCreateStoreRejectsBareVariableNames(t *testing.T) {
	f := newStoresFixture(t)

	_, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID:     f.tenantID,
		Name:         "Soko Batili",
		CSSVariables: types.CSSVariables{"primary": "#be123c"},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var count int64
	require.NoError(t, f.client.DB().Model(&models.Store{}).Count(&count).Error)
	assert.Zero(t, count, "validation failure must not create the store")
}

func TestListStoresByTenant(t *testing.T) {
	f := newStoresFixture(t)

	_, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID, Name: "Soko Moja",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID, Name: "Soko Mbili",
	})
	require.NoError(t, err)

	list, err := f.svc.ListStores(context.Background(), f.ownerID, f.tenantID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "soko-moja", list[0].Slug)
	assert.Equal(t, "soko-mbili", list[1].Slug)

	_, err = f.svc.ListStores(context.Background(), uuid.New(), f.tenantID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestCreateStoreDuplicateSlugConflict(t *testing.T) {
	f := newStoresFixture(t)

	input := CreateStoreInput{TenantID: f.tenantID, Name: "Soko Letu", Slug: "soko-letu"}
	_, err := f.svc.CreateStore(context.Background(), f.ownerID, input)
	require.NoError(t, err)

	_, err = f.svc.CreateStore(context.Background(), f.ownerID, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// The failed transaction must roll back its provisioning side effects.
	var themeCount int64
	require.NoError(t, f.client.DB().Model(&models.StoreTheme{}).Count(&themeCount).Error)
	assert.Equal(t, int64(1), themeCount)
}

func TestCreateStoreForbiddenForNonMember(t *testing.T) {
	f := newStoresFixture(t)

	_, err := f.svc.CreateStore(context.Background(), uuid.New(), CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko la Mgeni",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdateStoreEmptyPatchIsNoOp(t *testing.T) {
	f := newStoresFixture(t)

	created, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Letu",
	})
	require.NoError(t, err)

	var before models.Store
	require.NoError(t, f.client.DB().First(&before, "id = ?", created.ID).Error)

	_, err = f.svc.UpdateStore(context.Background(), f.ownerID, created.ID, UpdateStoreInput{})
	require.NoError(t, err)

	var after models.Store
	require.NoError(t, f.client.DB().First(&after, "id = ?", created.ID).Error)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "empty patch must not touch the row")
}

func TestUpdateStoreStatusTransition(t *testing.T) {
	f := newStoresFixture(t)

	created, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Letu",
	})
	require.NoError(t, err)

	active := enums.StoreStatusActive
	updated, err := f.svc.UpdateStore(context.Background(), f.ownerID, created.ID, UpdateStoreInput{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, enums.StoreStatusActive.String(), updated.Status)
}

func TestResolveStorefrontPublishedPagesOnly(t *testing.T) {
	f := newStoresFixture(t)

	created, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Letu",
	})
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(f.client.DB()), logg)
	pageSvc, err := pages.NewService(pages.NewRepository(f.client.DB()), f.client, NewRepository(f.client.DB()), tenants.NewRepository(f.client.DB()), events)
	require.NoError(t, err)

	about, err := pageSvc.CreatePage(context.Background(), f.ownerID, created.ID, pages.CreatePageInput{
		Title: "About", Slug: "about", Type: enums.PageTypeStandard,
	})
	require.NoError(t, err)
	_, err = pageSvc.PublishPage(context.Background(), f.ownerID, about.ID)
	require.NoError(t, err)

	_, err = pageSvc.CreatePage(context.Background(), f.ownerID, created.ID, pages.CreatePageInput{
		Title: "Hidden Draft", Slug: "hidden", Type: enums.PageTypeStandard,
	})
	require.NoError(t, err)

	storefront, err := f.svc.ResolveStorefront(context.Background(), created.Slug)
	require.NoError(t, err)
	require.Len(t, storefront.Pages, 1)
	assert.Equal(t, "about", storefront.Pages[0].Slug)
	assert.Equal(t, created.Slug, storefront.Store.Slug)
	assert.Equal(t, themes.BuiltinDefaults()["--primary"], storefront.Theme["--primary"])
}

func TestResolveStorefrontArchivedHidden(t *testing.T) {
	f := newStoresFixture(t)

	created, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Lililofungwa",
	})
	require.NoError(t, err)

	archived := enums.StoreStatusArchived
	_, err = f.svc.UpdateStore(context.Background(), f.ownerID, created.ID, UpdateStoreInput{Status: &archived})
	require.NoError(t, err)

	_, err = f.svc.ResolveStorefront(context.Background(), created.Slug)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetStorefrontPageUnpublishedNotFound(t *testing.T) {
	f := newStoresFixture(t)

	created, err := f.svc.CreateStore(context.Background(), f.ownerID, CreateStoreInput{
		TenantID: f.tenantID,
		Name:     "Soko Letu",
	})
	require.NoError(t, err)

	// The system home page exists but has never been published.
	_, err = f.svc.GetStorefrontPage(context.Background(), created.Slug, pages.HomeSlug)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
