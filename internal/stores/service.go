package stores

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/settings"
	"github.com/dukahq/duka-backend/internal/templates"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/outbox/payloads"
	slugpkg "github.com/dukahq/duka-backend/pkg/slug"
	"github.com/dukahq/duka-backend/pkg/types"
)

// CreateStoreInput holds the validated payload to provision a storefront.
type CreateStoreInput struct {
	TenantID     uuid.UUID
	Name         string
	Slug         string
	Description  *string
	Currency     *enums.Currency
	TemplateSlug string
	CSSVariables types.CSSVariables
}

// UpdateStoreInput holds optional mutation values. Nil fields are untouched.
type UpdateStoreInput struct {
	Name        *string
	Description *string
	LogoURL     *string
	Status      *enums.StoreStatus
	Currency    *enums.Currency
}

// Service exposes store management plus the public storefront read path.
type Service interface {
	CreateStore(ctx context.Context, userID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	GetStore(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
	ListStores(ctx context.Context, userID, tenantID uuid.UUID) ([]StoreDTO, error)
	UpdateStore(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	ResolveStorefront(ctx context.Context, storeSlug string) (*StorefrontDTO, error)
	GetStorefrontPage(ctx context.Context, storeSlug, pageSlug string) (*pages.PublicPageDTO, error)
}

type membershipChecker interface {
	UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo         *Repository
	dbClient     *db.Client
	memberships  membershipChecker
	templateRepo *templates.Repository
	themeRepo    *themes.Repository
	pageRepo     *pages.Repository
	settingsRepo *settings.Repository
	events       eventEmitter
}

// ServiceParams packages the dependencies for the store service.
type ServiceParams struct {
	Repo         *Repository
	DB           *db.Client
	Memberships  membershipChecker
	TemplateRepo *templates.Repository
	ThemeRepo    *themes.Repository
	PageRepo     *pages.Repository
	SettingsRepo *settings.Repository
	Events       eventEmitter
}

// NewService constructs a store service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store repository required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db client required")
	}
	if params.Memberships == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "membership checker required")
	}
	if params.TemplateRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "template repository required")
	}
	if params.ThemeRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "theme repository required")
	}
	if params.PageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page repository required")
	}
	if params.SettingsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settings repository required")
	}
	if params.Events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event emitter required")
	}
	return &service{
		repo:         params.Repo,
		dbClient:     params.DB,
		memberships:  params.Memberships,
		templateRepo: params.TemplateRepo,
		themeRepo:    params.ThemeRepo,
		pageRepo:     params.PageRepo,
		settingsRepo: params.SettingsRepo,
		events:       params.Events,
	}, nil
}

// CreateStore provisions the store with its default theme, system home page,
// and empty settings row in one transaction.
func (s *service) CreateStore(ctx context.Context, userID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	hasRole, err := s.memberships.UserHasRole(ctx, input.TenantID, userID,
		enums.MemberRoleOwner, enums.MemberRoleAdmin)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
	}
	if !hasRole {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role for this tenant")
	}

	storeSlug := strings.TrimSpace(input.Slug)
	if storeSlug == "" {
		storeSlug = slugpkg.Make(name)
	}
	if !slugpkg.IsValid(storeSlug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must contain only lowercase letters, digits, and hyphens")
	}

	currency := enums.CurrencyKES
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid currency")
		}
		currency = *input.Currency
	}

	if err := themes.ValidateVariableNames(input.CSSVariables); err != nil {
		return nil, err
	}
	overrides := types.CSSVariables{}
	if len(input.CSSVariables) > 0 {
		overrides = input.CSSVariables.Clone()
	}

	template := s.resolveTemplate(ctx, input.TemplateSlug)

	var created *models.Store
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		storeRepo := s.repo.WithTx(tx)
		themeRepo := s.themeRepo.WithTx(tx)
		pageRepo := s.pageRepo.WithTx(tx)
		settingsRepo := s.settingsRepo.WithTx(tx)

		store, err := storeRepo.Create(ctx, &models.Store{
			TenantID:    input.TenantID,
			Name:        name,
			Slug:        storeSlug,
			Status:      enums.StoreStatusDraft,
			Description: input.Description,
			Currency:    currency,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "ux_stores_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "store slug already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
		}

		theme := models.StoreTheme{
			StoreID:      store.ID,
			CSSVariables: overrides,
		}
		if template != nil {
			theme.TemplateID = &template.ID
		}
		if _, err := themeRepo.Create(ctx, &theme); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create theme")
		}

		var templateHome *types.PuckDocument
		if template != nil {
			templateHome = template.DefaultHomePage
		}
		home := pages.NewHomePage(store.ID, templateHome)
		if _, err := pageRepo.Create(ctx, &home); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create home page")
		}

		if _, err := settingsRepo.Create(ctx, &models.StoreSettings{StoreID: store.ID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create settings")
		}

		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventStoreCreated,
			AggregateType: enums.OutboxAggregateStore,
			AggregateID:   store.ID,
			Actor:         &outbox.ActorRef{UserID: userID, TenantID: &store.TenantID},
			Data: payloads.StoreCreatedEvent{
				StoreID:  store.ID,
				TenantID: store.TenantID,
				Name:     store.Name,
				Slug:     store.Slug,
				Currency: store.Currency,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit store.created")
		}

		created = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

// resolveTemplate falls back silently: an unknown slug resolves to the
// default template, and a missing default means no template layer at all.
func (s *service) resolveTemplate(ctx context.Context, templateSlug string) *models.Template {
	requested := strings.TrimSpace(templateSlug)
	if requested != "" {
		if template, err := s.templateRepo.FindBySlug(ctx, requested); err == nil {
			return template
		}
	}
	template, err := s.templateRepo.FindBySlug(ctx, templates.DefaultTemplateSlug)
	if err != nil {
		return nil
	}
	return template
}

func (s *service) GetStore(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.loadAuthorized(ctx, userID, storeID,
		enums.MemberRoleOwner, enums.MemberRoleAdmin, enums.MemberRoleManager,
		enums.MemberRoleStaff, enums.MemberRoleViewer)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

// ListStores returns every store under the tenant, oldest first. Any
// membership role may list.
func (s *service) ListStores(ctx context.Context, userID, tenantID uuid.UUID) ([]StoreDTO, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	hasRole, err := s.memberships.UserHasRole(ctx, tenantID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
	}
	if !hasRole {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this tenant")
	}

	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// UpdateStore applies a partial patch. An empty patch issues no write.
func (s *service) UpdateStore(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadAuthorized(ctx, userID, storeID,
		enums.MemberRoleOwner, enums.MemberRoleAdmin, enums.MemberRoleManager)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		store.Name = name
		changed = true
	}
	if input.Description != nil {
		store.Description = input.Description
		changed = true
	}
	if input.LogoURL != nil {
		store.LogoURL = input.LogoURL
		changed = true
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store status")
		}
		store.Status = *input.Status
		changed = true
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid currency")
		}
		store.Currency = *input.Currency
		changed = true
	}

	if !changed {
		return FromModel(store), nil
	}

	if _, err := s.repo.Save(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update store")
	}
	return FromModel(store), nil
}

// ResolveStorefront is the public shopper read path: store by slug plus the
// resolved theme and published pages.
func (s *service) ResolveStorefront(ctx context.Context, storeSlug string) (*StorefrontDTO, error) {
	store, err := s.loadPublicStore(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	resolved := themes.BuiltinDefaults()
	if theme, err := s.themeRepo.FindByStoreID(ctx, store.ID); err == nil {
		var template *models.Template
		if theme.TemplateID != nil {
			template, _ = s.templateRepo.FindByID(ctx, *theme.TemplateID)
		}
		resolved = themes.Resolve(template, theme.CSSVariables)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load theme")
	}

	rows, err := s.pageRepo.ListPublishedByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list published pages")
	}
	publicPages := make([]pages.PublicPageDTO, 0, len(rows))
	for i := range rows {
		if dto := pages.PublicFromModel(&rows[i]); dto != nil {
			publicPages = append(publicPages, *dto)
		}
	}

	return &StorefrontDTO{
		Store: StorefrontStoreDTO{
			Name:        store.Name,
			Slug:        store.Slug,
			Description: store.Description,
			LogoURL:     store.LogoURL,
			Currency:    store.Currency.String(),
		},
		Theme: resolved,
		Pages: publicPages,
	}, nil
}

// GetStorefrontPage returns one published page for the public storefront.
func (s *service) GetStorefrontPage(ctx context.Context, storeSlug, pageSlug string) (*pages.PublicPageDTO, error) {
	store, err := s.loadPublicStore(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	page, err := s.pageRepo.FindByStoreAndSlug(ctx, store.ID, strings.TrimSpace(pageSlug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load page")
	}

	dto := pages.PublicFromModel(page)
	if dto == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
	}
	return dto, nil
}

func (s *service) loadPublicStore(ctx context.Context, storeSlug string) (*models.Store, error) {
	normalized := strings.TrimSpace(storeSlug)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store slug is required")
	}
	store, err := s.repo.FindBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	if store.Status == enums.StoreStatusArchived {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return store, nil
}

func (s *service) loadAuthorized(ctx context.Context, userID, storeID uuid.UUID, roles ...enums.MemberRole) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	hasRole, err := s.memberships.UserHasRole(ctx, store.TenantID, userID, roles...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
	}
	if !hasRole {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role for this store")
	}
	return store, nil
}
