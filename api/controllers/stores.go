package controllers

import (
	"net/http"

	"github.com/dukahq/duka-backend/api/responses"
	"github.com/dukahq/duka-backend/api/validators"
	"github.com/dukahq/duka-backend/internal/stores"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/types"
)

type createStoreRequest struct {
	TenantID     string  `json:"tenant_id" validate:"required,uuid"`
	Name         string  `json:"name" validate:"required,min=1,max=120"`
	Slug         string  `json:"slug,omitempty" validate:"omitempty,max=60"`
	Description  *string `json:"description,omitempty"`
	Currency     *string `json:"currency,omitempty" validate:"omitempty,oneof=KES USD EUR"`
	TemplateSlug string  `json:"template_slug,omitempty" validate:"omitempty,max=60"`

	// Theme overrides applied on top of the template at provisioning time.
	CSSVariables types.CSSVariables `json:"css_variables,omitempty"`
}

type updateStoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,oneof=KES USD EUR"`
}

// StoreCreate provisions a store with its theme, home page, and settings.
func StoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := stores.CreateStoreInput{
			Name:         payload.Name,
			Slug:         payload.Slug,
			Description:  payload.Description,
			TemplateSlug: payload.TemplateSlug,
			CSSVariables: payload.CSSVariables,
		}
		if id, parseErr := parseUUIDField(payload.TenantID, "tenant_id"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else {
			input.TenantID = id
		}
		if payload.Currency != nil {
			currency, parseErr := enums.ParseCurrency(*payload.Currency)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid currency"))
				return
			}
			input.Currency = &currency
		}

		store, err := svc.CreateStore(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreDetail returns one store, membership required.
func StoreDetail(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.GetStore(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreList returns the tenant's stores, membership required.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenantID, err := pathUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListStores(r.Context(), userID, tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// StoreUpdate applies a partial update. Absent fields are left untouched.
func StoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := stores.UpdateStoreInput{
			Name:        payload.Name,
			Description: payload.Description,
			LogoURL:     payload.LogoURL,
		}
		if payload.Status != nil {
			status, parseErr := enums.ParseStoreStatus(*payload.Status)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status"))
				return
			}
			input.Status = &status
		}
		if payload.Currency != nil {
			currency, parseErr := enums.ParseCurrency(*payload.Currency)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid currency"))
				return
			}
			input.Currency = &currency
		}

		store, err := svc.UpdateStore(r.Context(), userID, storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}
