package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dukahq/duka-backend/api/responses"
	"github.com/dukahq/duka-backend/api/validators"
	"github.com/dukahq/duka-backend/internal/products"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
)

type variantRequest struct {
	Title        string          `json:"title" validate:"required,min=1,max=160"`
	SKU          *string         `json:"sku,omitempty" validate:"omitempty,max=64"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Currency     *string         `json:"currency,omitempty" validate:"omitempty,oneof=KES USD EUR"`
	Options      map[string]any  `json:"options,omitempty"`
	AvailableQty int             `json:"available_qty" validate:"min=0"`
}

type mediaRequest struct {
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type,omitempty" validate:"omitempty,max=100"`
}

type createProductRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=active draft archived"`
	Tags        []string         `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
	Variants    []variantRequest `json:"variants" validate:"required,min=1,dive"`
	Media       []mediaRequest   `json:"media,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty" validate:"omitempty,oneof=active draft archived"`
	Tags        *[]string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
}

type updateVariantRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	SKU          *string          `json:"sku,omitempty" validate:"omitempty,max=64"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Currency     *string          `json:"currency,omitempty" validate:"omitempty,oneof=KES USD EUR"`
	Options      *map[string]any  `json:"options,omitempty"`
	AvailableQty *int             `json:"available_qty,omitempty" validate:"omitempty,min=0"`
}

func (req createProductRequest) toInput() (products.CreateProductInput, error) {
	input := products.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status, err := enums.ParseProductStatus(*req.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	for _, variant := range req.Variants {
		converted := products.VariantInput{
			Title:        variant.Title,
			SKU:          variant.SKU,
			Price:        variant.Price,
			Options:      variant.Options,
			AvailableQty: variant.AvailableQty,
		}
		if variant.Currency != nil {
			currency, err := enums.ParseCurrency(*variant.Currency)
			if err != nil {
				return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
			}
			converted.Currency = &currency
		}
		input.Variants = append(input.Variants, converted)
	}
	for _, asset := range req.Media {
		input.Media = append(input.Media, products.MediaInput{
			URL:         asset.URL,
			ContentType: asset.ContentType,
		})
	}
	return input, nil
}

// ProductCreate adds a product with its variants and media to a store.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), userID, storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductList returns a cursor page of the store catalog.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

		params, err := validators.ParsePaginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListProducts(r.Context(), userID, storeID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ProductDetail returns one product with variants, inventory, and media.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductUpdate applies a partial product mutation. The slug never changes.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.UpdateProductInput{
			Title:       payload.Title,
			Description: payload.Description,
			Tags:        payload.Tags,
		}
		if payload.Status != nil {
			status, parseErr := enums.ParseProductStatus(*payload.Status)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status"))
				return
			}
			input.Status = &status
		}

		product, err := svc.UpdateProduct(r.Context(), userID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// VariantUpdate applies a partial variant mutation including inventory.
func VariantUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := pathUUID(r, "variantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.UpdateVariantInput{
			Title:        payload.Title,
			SKU:          payload.SKU,
			Price:        payload.Price,
			Options:      payload.Options,
			AvailableQty: payload.AvailableQty,
		}
		if payload.Currency != nil {
			currency, parseErr := enums.ParseCurrency(*payload.Currency)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid currency"))
				return
			}
			input.Currency = &currency
		}

		product, err := svc.UpdateVariant(r.Context(), userID, variantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes one product and its dependents.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), userID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductDeleteAll clears the store catalog and reports how many rows went.
func ProductDeleteAll(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

		deleted, err := svc.DeleteAllProducts(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"deleted": deleted})
	}
}
