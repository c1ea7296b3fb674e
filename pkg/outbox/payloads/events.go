package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/enums"
)

// TenantCreatedEvent signals a new tenant account.
type TenantCreatedEvent struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
}

// StoreCreatedEvent is emitted when a storefront is provisioned.
type StoreCreatedEvent struct {
	StoreID  uuid.UUID      `json:"store_id"`
	TenantID uuid.UUID      `json:"tenant_id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Currency enums.Currency `json:"currency"`
}

// PagePublishedEvent surfaces a page going live on the storefront.
type PagePublishedEvent struct {
	PageID      uuid.UUID      `json:"page_id"`
	StoreID     uuid.UUID      `json:"store_id"`
	Slug        string         `json:"slug"`
	Type        enums.PageType `json:"type"`
	PublishedAt time.Time      `json:"published_at"`
}

// ProductCreatedEvent is emitted for each new listing, demo seeds included.
type ProductCreatedEvent struct {
	ProductID uuid.UUID           `json:"product_id"`
	StoreID   uuid.UUID           `json:"store_id"`
	Title     string              `json:"title"`
	Slug      string              `json:"slug"`
	Source    enums.ProductSource `json:"source"`
}
