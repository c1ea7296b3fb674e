package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukahq/duka-backend/api/controllers"
	"github.com/dukahq/duka-backend/api/middleware"
	"github.com/dukahq/duka-backend/internal/onboarding"
	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/internal/products"
	"github.com/dukahq/duka-backend/internal/stores"
	"github.com/dukahq/duka-backend/internal/tenants"
	"github.com/dukahq/duka-backend/internal/themes"
	"github.com/dukahq/duka-backend/pkg/config"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/metrics"
	pkgredis "github.com/dukahq/duka-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Tenants    tenants.Service
	Stores     stores.Service
	Themes     themes.Service
	Pages      pages.Service
	Products   products.Service
	Onboarding onboarding.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(),
	)

	onboardingPolicy := middleware.NewRateLimitPolicy(
		"onboarding",
		cfg.RateLimit.OnboardingWindow,
		cfg.RateLimit.OnboardingIPLimit,
		cfg.RateLimit.OnboardingUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, params.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Route("/storefront/{storeSlug}", func(r chi.Router) {
			r.Get("/", controllers.StorefrontResolve(params.Stores, logg))
			r.Get("/pages/{pageSlug}", controllers.StorefrontPage(params.Stores, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(params.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1", func(r chi.Router) {
			r.With(middleware.RateLimit(onboardingPolicy, params.Redis, logg)).
				Post("/onboarding/complete", controllers.OnboardingComplete(params.Onboarding, logg))

			r.Route("/tenants", func(r chi.Router) {
				r.Get("/", controllers.TenantList(params.Tenants, logg))
				r.Post("/", controllers.TenantCreate(params.Tenants, logg))
				r.Get("/{tenantId}", controllers.TenantDetail(params.Tenants, logg))
				r.Get("/{tenantId}/stores", controllers.StoreList(params.Stores, logg))
			})

			r.Route("/stores", func(r chi.Router) {
				r.Post("/", controllers.StoreCreate(params.Stores, logg))
				r.Route("/{storeId}", func(r chi.Router) {
					r.Get("/", controllers.StoreDetail(params.Stores, logg))
					r.Patch("/", controllers.StoreUpdate(params.Stores, logg))
					r.Get("/theme", controllers.ThemeDetail(params.Themes, logg))
					r.Patch("/theme", controllers.ThemeUpdate(params.Themes, logg))
					r.Route("/pages", func(r chi.Router) {
						r.Get("/", controllers.PageList(params.Pages, logg))
						r.Post("/", controllers.PageCreate(params.Pages, logg))
					})
					r.Route("/products", func(r chi.Router) {
						r.Get("/", controllers.ProductList(params.Products, logg))
						r.Post("/", controllers.ProductCreate(params.Products, logg))
						r.Delete("/", controllers.ProductDeleteAll(params.Products, logg))
					})
				})
			})

			r.Route("/pages/{pageId}", func(r chi.Router) {
				r.Get("/", controllers.PageDetail(params.Pages, logg))
				r.Patch("/", controllers.PageUpdate(params.Pages, logg))
				r.Post("/publish", controllers.PagePublish(params.Pages, logg))
				r.Delete("/", controllers.PageDelete(params.Pages, logg))
			})

			r.Route("/products/{productId}", func(r chi.Router) {
				r.Get("/", controllers.ProductDetail(params.Products, logg))
				r.Patch("/", controllers.ProductUpdate(params.Products, logg))
				r.Delete("/", controllers.ProductDelete(params.Products, logg))
			})

			r.Patch("/variants/{variantId}", controllers.VariantUpdate(params.Products, logg))
		})
	})

	return r
}
