package onboarding

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/products"
	"github.com/dukahq/duka-backend/internal/settings"
	"github.com/dukahq/duka-backend/internal/stores"
	"github.com/dukahq/duka-backend/internal/templates"
	"github.com/dukahq/duka-backend/internal/tenants"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/config"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/outbox/payloads"
	slugpkg "github.com/dukahq/duka-backend/pkg/slug"
	"github.com/dukahq/duka-backend/pkg/types"
)

// demoProduct pins the fixed seed listing shape.
type demoProduct struct {
	title string
	price decimal.Decimal
	qty   int
}

var demoProducts = []demoProduct{
	{title: "Sample Product 1", price: decimal.NewFromInt(1000), qty: 100},
	{title: "Sample Product 2", price: decimal.NewFromInt(2500), qty: 100},
	{title: "Sample Product 3", price: decimal.NewFromInt(1500), qty: 100},
}

// CompleteOnboardingInput holds the validated payload for first-run setup.
type CompleteOnboardingInput struct {
	BusinessName string
	StoreName    string
	StoreSlug    string
	TemplateSlug string
}

// Result returns the entities the dashboard needs right after onboarding.
type Result struct {
	Tenant   *tenants.TenantDTO    `json:"tenant"`
	Store    *stores.StoreDTO      `json:"store"`
	Products []products.ProductDTO `json:"products,omitempty"`
}

// Service runs the once-per-seller setup flow.
type Service interface {
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, input CompleteOnboardingInput) (*Result, error)
}

type demoSeeder interface {
	SeedProduct(ctx context.Context, store *models.Store, input products.CreateProductInput) (*products.ProductDTO, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// ServiceParams packages the dependencies for the onboarding flow.
type ServiceParams struct {
	DB           *db.Client
	TenantRepo   *tenants.Repository
	StoreRepo    *stores.Repository
	ThemeRepo    *themes.Repository
	PageRepo     *pages.Repository
	SettingsRepo *settings.Repository
	TemplateRepo *templates.Repository
	Products     demoSeeder
	Events       eventEmitter
	Config       config.OnboardingConfig
	Flags        config.FeatureFlagsConfig
	Logger       *logger.Logger
}

type service struct {
	db           *db.Client
	tenantRepo   *tenants.Repository
	storeRepo    *stores.Repository
	themeRepo    *themes.Repository
	pageRepo     *pages.Repository
	settingsRepo *settings.Repository
	templateRepo *templates.Repository
	products     demoSeeder
	events       eventEmitter
	cfg          config.OnboardingConfig
	flags        config.FeatureFlagsConfig
	logg         *logger.Logger
}

// NewService builds an onboarding service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db client required")
	}
	if params.TenantRepo == nil || params.StoreRepo == nil || params.ThemeRepo == nil ||
		params.PageRepo == nil || params.SettingsRepo == nil || params.TemplateRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "repositories required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product seeder required")
	}
	if params.Events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event emitter required")
	}
	return &service{
		db:           params.DB,
		tenantRepo:   params.TenantRepo,
		storeRepo:    params.StoreRepo,
		themeRepo:    params.ThemeRepo,
		pageRepo:     params.PageRepo,
		settingsRepo: params.SettingsRepo,
		templateRepo: params.TemplateRepo,
		products:     params.Products,
		events:       params.Events,
		cfg:          params.Config,
		flags:        params.Flags,
		logg:         params.Logger,
	}, nil
}

// CompleteOnboarding provisions tenant, membership, store, theme, home page,
// and settings in one transaction, then seeds demo products concurrently.
// The tenant slug mirrors the store slug: onboarding assumes one store per
// tenant.
func (s *service) CompleteOnboarding(ctx context.Context, userID uuid.UUID, input CompleteOnboardingInput) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	businessName := strings.TrimSpace(input.BusinessName)
	if businessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business_name is required")
	}
	storeName := strings.TrimSpace(input.StoreName)
	if storeName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store_name is required")
	}
	storeSlug := strings.TrimSpace(input.StoreSlug)
	if storeSlug == "" {
		storeSlug = slugpkg.Make(storeName)
	}
	if !slugpkg.IsValid(storeSlug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store_slug must contain only lowercase letters, digits, and hyphens")
	}

	template := s.resolveTemplate(ctx, input.TemplateSlug)

	var (
		tenant *models.Tenant
		store  *models.Store
	)
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		tenantRepo := s.tenantRepo.WithTx(tx)
		storeRepo := s.storeRepo.WithTx(tx)
		themeRepo := s.themeRepo.WithTx(tx)
		pageRepo := s.pageRepo.WithTx(tx)
		settingsRepo := s.settingsRepo.WithTx(tx)

		var err error
		tenant, err = tenantRepo.Create(ctx, &models.Tenant{
			Name:   businessName,
			Slug:   storeSlug,
			Status: enums.TenantStatusActive,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "ux_tenants_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "tenant slug already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}

		if _, err := tenantRepo.CreateMembership(ctx, tenant.ID, userID, enums.MemberRoleOwner); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create owner membership")
		}

		store, err = storeRepo.Create(ctx, &models.Store{
			TenantID: tenant.ID,
			Name:     storeName,
			Slug:     storeSlug,
			Status:   enums.StoreStatusDraft,
			Currency: s.demoCurrency(),
		})
		if err != nil {
			if db.IsUniqueViolation(err, "ux_stores_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "store slug already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
		}

		theme := models.StoreTheme{
			StoreID:      store.ID,
			CSSVariables: types.CSSVariables{},
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
			EventType:     enums.OutboxEventTenantCreated,
			AggregateType: enums.OutboxAggregateTenant,
			AggregateID:   tenant.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: enums.MemberRoleOwner.String()},
			Data: payloads.TenantCreatedEvent{
				TenantID:    tenant.ID,
				Name:        tenant.Name,
				Slug:        tenant.Slug,
				OwnerUserID: userID,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit tenant.created")
		}

		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventStoreCreated,
			AggregateType: enums.OutboxAggregateStore,
			AggregateID:   store.ID,
			Actor:         &outbox.ActorRef{UserID: userID, TenantID: &tenant.ID},
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

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tenant: tenants.FromModel(tenant),
		Store:  stores.FromModel(store),
	}

	// Demo products seed outside the onboarding transaction: the account is
	// already usable, so seeding failures must not roll it back.
	if template != nil && s.flags.SeedDemoProducts {
		seeded, err := s.seedDemoProducts(ctx, store)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithStoreID(ctx, store.ID.String()), "demo product seeding incomplete", err)
			}
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed demo products")
		}
		result.Products = seeded
	}

	return result, nil
}

// seedDemoProducts creates the fixed listings concurrently, collecting every
// success even when siblings fail.
func (s *service) seedDemoProducts(ctx context.Context, store *models.Store) ([]products.ProductDTO, error) {
	seeded := make([]*products.ProductDTO, len(demoProducts))

	g, gctx := errgroup.WithContext(ctx)
	for i, demo := range demoProducts {
		g.Go(func() error {
			source := enums.ProductSourceDemo
			dto, err := s.products.SeedProduct(gctx, store, products.CreateProductInput{
				Title:  demo.title,
				Source: &source,
				Variants: []products.VariantInput{{
					Title:        "Default",
					Price:        demo.price,
					AvailableQty: demo.qty,
				}},
			})
			if err != nil {
				return err
			}
			seeded[i] = dto
			return nil
		})
	}
	err := g.Wait()

	out := make([]products.ProductDTO, 0, len(seeded))
	for _, dto := range seeded {
		if dto != nil {
			out = append(out, *dto)
		}
	}
	return out, err
}

func (s *service) resolveTemplate(ctx context.Context, templateSlug string) *models.Template {
	requested := strings.TrimSpace(templateSlug)
	if requested == "" {
		return nil
	}
	if template, err := s.templateRepo.FindBySlug(ctx, requested); err == nil {
		return template
	}
	template, err := s.templateRepo.FindBySlug(ctx, templates.DefaultTemplateSlug)
	if err != nil {
		return nil
	}
	return template
}

func (s *service) demoCurrency() enums.Currency {
	if currency, err := enums.ParseCurrency(s.cfg.DemoCurrency); err == nil {
		return currency
	}
	return enums.CurrencyKES
}
