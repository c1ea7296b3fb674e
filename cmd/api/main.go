package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dukahq/duka-backend/api/routes"
	"github.com/dukahq/duka-backend/internal/media"
	"github.com/dukahq/duka-backend/internal/onboarding"
	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/products"
	"github.com/dukahq/duka-backend/internal/settings"
	"github.com/dukahq/duka-backend/internal/stores"
	"github.com/dukahq/duka-backend/internal/templates"
	"github.com/dukahq/duka-backend/internal/tenants"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/config"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/metrics"
	"github.com/dukahq/duka-backend/pkg/migrate"
	"github.com/dukahq/duka-backend/pkg/outbox"
	pkgredis "github.com/dukahq/duka-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)
	tenantRepo := tenants.NewRepository(gormDB)
	templateRepo := templates.NewRepository(gormDB)
	themeRepo := themes.NewRepository(gormDB)
	pageRepo := pages.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	storeRepo := stores.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	mediaRepo := media.NewRepository(gormDB)

	tenantService, err := tenants.NewService(tenantRepo, dbClient, outboxService)
	requireService(logg, "tenants", err)

	storeService, err := stores.NewService(stores.ServiceParams{
		Repo:         storeRepo,
		DB:           dbClient,
		Memberships:  tenantRepo,
		TemplateRepo: templateRepo,
		ThemeRepo:    themeRepo,
		PageRepo:     pageRepo,
		SettingsRepo: settingsRepo,
		Events:       outboxService,
	})
	requireService(logg, "stores", err)

	themeService, err := themes.NewService(themeRepo, storeRepo, tenantRepo, templateRepo)
	requireService(logg, "themes", err)

	pageService, err := pages.NewService(pageRepo, dbClient, storeRepo, tenantRepo, outboxService)
	requireService(logg, "pages", err)

	productService, err := products.NewService(productRepo, dbClient, storeRepo, tenantRepo, mediaRepo, outboxService)
	requireService(logg, "products", err)

	onboardingService, err := onboarding.NewService(onboarding.ServiceParams{
		DB:           dbClient,
		TenantRepo:   tenantRepo,
		StoreRepo:    storeRepo,
		TemplateRepo: templateRepo,
		ThemeRepo:    themeRepo,
		PageRepo:     pageRepo,
		SettingsRepo: settingsRepo,
		Products:     productService,
		Events:       outboxService,
		Config:       cfg.Onboarding,
		Flags:        cfg.FeatureFlags,
		Logger:       logg,
	})
	requireService(logg, "onboarding", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Tenants:     tenantService,
			Stores:      storeService,
			Themes:      themeService,
			Pages:       pageService,
			Products:    productService,
			Onboarding:  onboardingService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+name+" service", err)
		os.Exit(1)
	}
}
