package controllers

import (
	"net/http"

	"github.com/dukahq/duka-backend/api/responses"
	"github.com/dukahq/duka-backend/api/validators"
	"github.com/dukahq/duka-backend/internal/onboarding"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
)

type completeOnboardingRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=1,max=120"`
	StoreName    string `json:"store_name" validate:"required,min=1,max=120"`
	StoreSlug    string `json:"store_slug" validate:"required,min=1,max=60"`
	TemplateSlug string `json:"template_slug,omitempty" validate:"omitempty,max=60"`
}

// OnboardingComplete provisions a tenant, store, and starter catalog in one call.
func OnboardingComplete(svc onboarding.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "onboarding service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload completeOnboardingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CompleteOnboarding(r.Context(), userID, onboarding.CompleteOnboardingInput{
			BusinessName: payload.BusinessName,
			StoreName:    payload.StoreName,
			StoreSlug:    payload.StoreSlug,
			TemplateSlug: payload.TemplateSlug,
		})
		if err != nil {
			// Demo seeding can fail after the tenant and store are committed;
			// surface the partial result rather than discarding it.
			if result != nil && pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeDependency {
				if logg != nil {
					logg.Error(r.Context(), "onboarding demo seed incomplete", err)
				}
				responses.WriteSuccessStatus(w, http.StatusCreated, result)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
