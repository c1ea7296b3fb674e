package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/internal/pages"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/types"
)

// StoreDTO represents the dashboard store payload.
type StoreDTO struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Status      string    `json:"status"`
	Description *string   `json:"description,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StorefrontDTO is the public read model shoppers render from: the store,
// its resolved theme, and its published pages.
type StorefrontDTO struct {
	Store StorefrontStoreDTO    `json:"store"`
	Theme types.CSSVariables    `json:"theme"`
	Pages []pages.PublicPageDTO `json:"pages"`
}

// StorefrontStoreDTO trims the store to shopper-visible fields.
type StorefrontStoreDTO struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	Currency    string  `json:"currency"`
}

func FromModel(store *models.Store) *StoreDTO {
	if store == nil {
		return nil
	}
	return &StoreDTO{
		ID:          store.ID,
		TenantID:    store.TenantID,
		Name:        store.Name,
		Slug:        store.Slug,
		Status:      store.Status.String(),
		Description: store.Description,
		LogoURL:     store.LogoURL,
		Currency:    store.Currency.String(),
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}
