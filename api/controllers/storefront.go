package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dukahq/duka-backend/api/responses"
	"github.com/dukahq/duka-backend/internal/stores"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
)

// StorefrontResolve serves the public storefront document for a store slug.
func StorefrontResolve(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeSlug := strings.TrimSpace(chi.URLParam(r, "storeSlug"))
		if storeSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store slug required"))
			return
		}

		storefront, err := svc.ResolveStorefront(r.Context(), storeSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storefront)
	}
}

// StorefrontPage serves one published page of a public storefront.
func StorefrontPage(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeSlug := strings.TrimSpace(chi.URLParam(r, "storeSlug"))
		pageSlug := strings.TrimSpace(chi.URLParam(r, "pageSlug"))
		if storeSlug == "" || pageSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store and page slugs required"))
			return
		}

		page, err := svc.GetStorefrontPage(r.Context(), storeSlug, pageSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
