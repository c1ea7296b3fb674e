package controllers

import (
	"net/http"

	"github.com/dukahq/duka-backend/api/responses"
	"github.com/dukahq/duka-backend/api/validators"
	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/types"
)

type createPageRequest struct {
	Title   string              `json:"title" validate:"required,min=1,max=160"`
	Slug    string              `json:"slug" validate:"required,min=1,max=60"`
	Type    string              `json:"type" validate:"required,oneof=home standard landing"`
	Content *types.PuckDocument `json:"content,omitempty"`
}

type updatePageRequest struct {
	Title   *string             `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Slug    *string             `json:"slug,omitempty" validate:"omitempty,min=1,max=60"`
	Content *types.PuckDocument `json:"content,omitempty"`
}

// PageCreate adds a draft page to a store.
func PageCreate(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
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

		var payload createPageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageType, err := enums.ParsePageType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid page type"))
			return
		}

		page, err := svc.CreatePage(r.Context(), userID, storeID, pages.CreatePageInput{
			Title:   payload.Title,
			Slug:    payload.Slug,
			Type:    pageType,
			Content: payload.Content,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}

// PageList returns all pages for a store, drafts included.
func PageList(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
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

		list, err := svc.ListPages(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PageDetail returns one page with its draft and published content.
func PageDetail(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.GetPage(r.Context(), userID, pageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageUpdate applies a partial draft mutation. An empty payload is a no-op.
func PageUpdate(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.UpdatePage(r.Context(), userID, pageID, pages.UpdatePageInput{
			Title:   payload.Title,
			Slug:    payload.Slug,
			Content: payload.Content,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PagePublish snapshots the draft content into the published slot.
func PagePublish(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.PublishPage(r.Context(), userID, pageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageDelete removes a non-system page.
func PageDelete(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePage(r.Context(), userID, pageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
