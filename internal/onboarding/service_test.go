package onboarding

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/duka-backend/internal/media"
	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/products"
	"github.com/dukahq/duka-backend/internal/settings"
	"github.com/dukahq/duka-backend/internal/stores"
	"github.com/dukahq/duka-backend/internal/templates"
	"github.com/dukahq/duka-backend/internal/tenants"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/config"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/dbtest"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/types"
)

type onboardingFixture struct {
	client *db.Client
	svc    Service
}

func newOnboardingFixture(t *testing.T, seedDemo bool) *onboardingFixture {
	t.Helper()
	client := dbtest.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(client.DB()), logg)

	productSvc, err := products.NewService(
		products.NewRepository(client.DB()),
		client,
		stores.NewRepository(client.DB()),
		tenants.NewRepository(client.DB()),
		media.NewRepository(client.DB()),
		events,
	)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		DB:           client,
		TenantRepo:   tenants.NewRepository(client.DB()),
		StoreRepo:    stores.NewRepository(client.DB()),
		ThemeRepo:    themes.NewRepository(client.DB()),
		PageRepo:     pages.NewRepository(client.DB()),
		SettingsRepo: settings.NewRepository(client.DB()),
		TemplateRepo: templates.NewRepository(client.DB()),
		Products:     productSvc,
		Events:       events,
		Config:       config.OnboardingConfig{DemoCurrency: "KES"},
		Flags:        config.FeatureFlagsConfig{SeedDemoProducts: seedDemo},
		Logger:       logg,
	})
	require.NoError(t, err)

	return &onboardingFixture{client: client, svc: svc}
}

func (f *onboardingFixture) seedTemplate(t *testing.T, slug string) *models.Template {
	t.Helper()
	home := types.PuckDocument{
		Content: []json.RawMessage{json.RawMessage(`{"type":"Hero","props":{"headline":"Karibu Duka"}}`)},
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

func TestCompleteOnboardingProvisionsEverything(t *testing.T) {
	f := newOnboardingFixture(t, true)
	template := f.seedTemplate(t, "modern")
	userID := uuid.New()

	result, err := f.svc.CompleteOnboarding(context.Background(), userID, CompleteOnboardingInput{
		BusinessName: "Wanjiku Crafts",
		StoreName:    "Wanjiku Crafts Shop",
		StoreSlug:    "wanjiku-crafts",
		TemplateSlug: "modern",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Tenant)
	require.NotNil(t, result.Store)

	// Tenant and store share the slug in the 1:1 onboarding flow.
	assert.Equal(t, "wanjiku-crafts", result.Tenant.Slug)
	assert.Equal(t, "wanjiku-crafts", result.Store.Slug)
	assert.Equal(t, "Wanjiku Crafts", result.Tenant.Name)
	assert.Equal(t, enums.StoreStatusDraft.String(), result.Store.Status)

	var membership models.TenantMembership
	require.NoError(t, f.client.DB().
		First(&membership, "tenant_id = ? AND user_id = ?", result.Tenant.ID, userID).Error)
	assert.Equal(t, enums.MemberRoleOwner, membership.Role)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", result.Store.ID).Error)
	require.NotNil(t, theme.TemplateID)
	assert.Equal(t, template.ID, *theme.TemplateID)

	var home models.StorePage
	require.NoError(t, f.client.DB().
		First(&home, "store_id = ? AND slug = ?", result.Store.ID, pages.HomeSlug).Error)
	assert.True(t, home.IsSystem)
	assert.Contains(t, string(home.PuckData.Content[0]), "Karibu Duka")

	var settingsRow models.StoreSettings
	require.NoError(t, f.client.DB().First(&settingsRow, "store_id = ?", result.Store.ID).Error)

	require.Len(t, result.Products, 3)
	titles := make([]string, 0, 3)
	prices := map[string]decimal.Decimal{}
	for _, p := range result.Products {
		titles = append(titles, p.Title)
		require.Len(t, p.Variants, 1)
		prices[p.Title] = p.Variants[0].Price
		assert.Equal(t, enums.ProductSourceDemo.String(), p.Source)
		assert.Equal(t, 100, p.Variants[0].AvailableQty)
	}
	sort.Strings(titles)
	assert.Equal(t, []string{"Sample Product 1", "Sample Product 2", "Sample Product 3"}, titles)
	assert.True(t, decimal.NewFromInt(1000).Equal(prices["Sample Product 1"]))
	assert.True(t, decimal.NewFromInt(2500).Equal(prices["Sample Product 2"]))
	assert.True(t, decimal.NewFromInt(1500).Equal(prices["Sample Product 3"]))

	for _, eventType := range []enums.OutboxEventType{enums.OutboxEventTenantCreated, enums.OutboxEventStoreCreated} {
		var count int64
		require.NoError(t, f.client.DB().Model(&models.OutboxEvent{}).
			Where("event_type = ?", eventType).Count(&count).Error)
		assert.Equal(t, int64(1), count, "expected one %s event", eventType)
	}
}

func TestCompleteOnboardingWithoutTemplateSkipsDemoProducts(t *testing.T) {
	f := newOnboardingFixture(t, true)
	userID := uuid.New()

	result, err := f.svc.CompleteOnboarding(context.Background(), userID, CompleteOnboardingInput{
		BusinessName: "Plain Duka",
		StoreName:    "Plain Duka",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Products)

	var productCount int64
	require.NoError(t, f.client.DB().Model(&models.Product{}).Count(&productCount).Error)
	assert.Zero(t, productCount)

	var theme models.StoreTheme
	require.NoError(t, f.client.DB().First(&theme, "store_id = ?", result.Store.ID).Error)
	assert.Nil(t, theme.TemplateID)
}

func TestCompleteOnboardingSeedFlagOff(t *testing.T) {
	f := newOnboardingFixture(t, false)
	f.seedTemplate(t, "modern")

	result, err := f.svc.CompleteOnboarding(context.Background(), uuid.New(), CompleteOnboardingInput{
		BusinessName: "Quiet Duka",
		StoreName:    "Quiet Duka",
		TemplateSlug: "modern",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Products)

	var productCount int64
	require.NoError(t, f.client.DB().Model(&models.Product{}).Count(&productCount).Error)
	assert.Zero(t, productCount)
}

func TestCompleteOnboardingDuplicateSlugRollsBack(t *testing.T) {
	f := newOnboardingFixture(t, true)

	first := CompleteOnboardingInput{BusinessName: "Duka Moja", StoreName: "Duka Moja", StoreSlug: "duka-moja"}
	_, err := f.svc.CompleteOnboarding(context.Background(), uuid.New(), first)
	require.NoError(t, err)

	_, err = f.svc.CompleteOnboarding(context.Background(), uuid.New(), first)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// Only the first attempt's rows survive.
	var tenantCount, storeCount int64
	require.NoError(t, f.client.DB().Model(&models.Tenant{}).Count(&tenantCount).Error)
	require.NoError(t, f.client.DB().Model(&models.Store{}).Count(&storeCount).Error)
	assert.Equal(t, int64(1), tenantCount)
	assert.Equal(t, int64(1), storeCount)
}

func TestCompleteOnboardingSlugFromStoreName(t *testing.T) {
	f := newOnboardingFixture(t, true)

	result, err := f.svc.CompleteOnboarding(context.Background(), uuid.New(), CompleteOnboardingInput{
		BusinessName: "Auto Slug Ltd",
		StoreName:    "Auto Slug Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "auto-slug-shop", result.Store.Slug)
	assert.Equal(t, "auto-slug-shop", result.Tenant.Slug)
}
