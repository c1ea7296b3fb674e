package themes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/dbtest"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/types"
)

type stubStoreLoader struct {
	store *models.Store
}

func (s stubStoreLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	return s.store, nil
}

type stubMemberships struct {
	allowed bool
}

func (s stubMemberships) UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	return s.allowed, nil
}

type stubTemplates struct {
	templates []*models.Template
}

func (s stubTemplates) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	for _, tpl := range s.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s stubTemplates) FindBySlug(ctx context.Context, slug string) (*models.Template, error) {
	for _, tpl := range s.templates {
		if tpl.Slug == slug {
			return tpl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func testStore() *models.Store {
	return &models.Store{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Name:     "Nyumbani Decor",
		Slug:     "nyumbani-decor",
		Status:   enums.StoreStatusActive,
		Currency: enums.CurrencyKES,
	}
}

func modernTemplate() *models.Template {
	return &models.Template{
		ID:   uuid.New(),
		Slug: "modern",
		Name: "Modern",
		DefaultCSSVariables: types.CSSVariables{
			"--primary": "#0f766e",
			"--radius":  "0.75rem",
		},
	}
}

func newThemesService(t *testing.T, client *db.Client, store *models.Store, templates stubTemplates) Service {
	t.Helper()
	svc, err := NewService(NewRepository(client.DB()), stubStoreLoader{store: store}, stubMemberships{allowed: true}, templates)
	require.NoError(t, err)
	return svc
}

func seedTheme(t *testing.T, client *db.Client, theme *models.StoreTheme) {
	t.Helper()
	if theme.CSSVariables == nil {
		theme.CSSVariables = types.CSSVariables{}
	}
	require.NoError(t, client.DB().Create(theme).Error)
}

func TestResolvePrecedence(t *testing.T) {
	template := modernTemplate()
	overrides := types.CSSVariables{
		"--primary": "#be123c",
		"--custom":  "12px",
	}

	resolved := Resolve(template, overrides)

	// Override beats template, template beats builtin, builtin fills the rest.
	assert.Equal(t, "#be123c", resolved["--primary"])
	assert.Equal(t, "0.75rem", resolved["--radius"])
	assert.Equal(t, BuiltinDefaults()["--background"], resolved["--background"])
	assert.Equal(t, "12px", resolved["--custom"])
}

func TestResolveWithoutTemplate(t *testing.T) {
	resolved := Resolve(nil, nil)
	assert.Equal(t, BuiltinDefaults(), resolved)
}

func TestGetThemeResolvesTemplate(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	template := modernTemplate()
	svc := newThemesService(t, client, store, stubTemplates{templates: []*models.Template{template}})

	seedTheme(t, client, &models.StoreTheme{
		StoreID:      store.ID,
		TemplateID:   &template.ID,
		CSSVariables: types.CSSVariables{"--accent": "#f59e0b"},
	})

	theme, err := svc.GetTheme(context.Background(), uuid.New(), store.ID)
	require.NoError(t, err)
	require.NotNil(t, theme.TemplateSlug)
	assert.Equal(t, "modern", *theme.TemplateSlug)
	assert.Equal(t, "#0f766e", theme.Resolved["--primary"])
	assert.Equal(t, "#f59e0b", theme.Resolved["--accent"])
	assert.Equal(t, types.CSSVariables{"--accent": "#f59e0b"}, theme.Overrides)
}

func TestUpdateThemeMergesOverrides(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newThemesService(t, client, store, stubTemplates{})

	seedTheme(t, client, &models.StoreTheme{
		StoreID:      store.ID,
		CSSVariables: types.CSSVariables{"--primary": "#111111", "--accent": "#222222"},
	})

	theme, err := svc.UpdateTheme(context.Background(), uuid.New(), store.ID, UpdateThemeInput{
		Variables: types.CSSVariables{"--primary": "#333333"},
	})
	require.NoError(t, err)
	assert.Equal(t, "#333333", theme.Overrides["--primary"])
	assert.Equal(t, "#222222", theme.Overrides["--accent"], "untouched overrides survive the merge")

	var row models.StoreTheme
	require.NoError(t, client.DB().First(&row, "store_id = ?", store.ID).Error)
	assert.Equal(t, "#333333", row.CSSVariables["--primary"])
}

func TestUpdateThemeRejectsBareVariableNames(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newThemesService(t, client, store, stubTemplates{})

	seedTheme(t, client, &models.StoreTheme{StoreID: store.ID})

	_, err := svc.UpdateTheme(context.Background(), uuid.New(), store.ID, UpdateThemeInput{
		Variables: types.CSSVariables{"primary": "#333333"},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateThemeUnknownTemplateNotFound(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newThemesService(t, client, store, stubTemplates{})

	seedTheme(t, client, &models.StoreTheme{StoreID: store.ID})

	slug := "does-not-exist"
	_, err := svc.UpdateTheme(context.Background(), uuid.New(), store.ID, UpdateThemeInput{TemplateSlug: &slug})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateThemeEmptyPatchIsNoOp(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newThemesService(t, client, store, stubTemplates{})

	seedTheme(t, client, &models.StoreTheme{StoreID: store.ID})

	var before models.StoreTheme
	require.NoError(t, client.DB().First(&before, "store_id = ?", store.ID).Error)

	_, err := svc.UpdateTheme(context.Background(), uuid.New(), store.ID, UpdateThemeInput{})
	require.NoError(t, err)

	var after models.StoreTheme
	require.NoError(t, client.DB().First(&after, "store_id = ?", store.ID).Error)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "empty patch must not touch the row")
}

func TestThemeForbiddenWithoutRole(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc, err := NewService(NewRepository(client.DB()), stubStoreLoader{store: store}, stubMemberships{allowed: false}, stubTemplates{})
	require.NoError(t, err)

	_, err = svc.GetTheme(context.Background(), uuid.New(), store.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
