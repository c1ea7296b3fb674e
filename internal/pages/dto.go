package pages

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/types"
)

// PageDTO represents the dashboard view of a page: draft content plus
// publish state.
type PageDTO struct {
	ID          uuid.UUID           `json:"id"`
	StoreID     uuid.UUID           `json:"store_id"`
	Slug        string              `json:"slug"`
	Title       string              `json:"title"`
	Type        string              `json:"type"`
	IsSystem    bool                `json:"is_system"`
	Draft       types.PuckDocument  `json:"draft"`
	IsPublished bool                `json:"is_published"`
	Published   *types.PuckDocument `json:"published,omitempty"`
	PublishedAt *time.Time          `json:"published_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PublicPageDTO is the storefront view: published content only.
type PublicPageDTO struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Type        string             `json:"type"`
	Content     types.PuckDocument `json:"content"`
	PublishedAt *time.Time         `json:"published_at,omitempty"`
}

func FromModel(page *models.StorePage) *PageDTO {
	if page == nil {
		return nil
	}
	return &PageDTO{
		ID:          page.ID,
		StoreID:     page.StoreID,
		Slug:        page.Slug,
		Title:       page.Title,
		Type:        page.Type.String(),
		IsSystem:    page.IsSystem,
		Draft:       page.PuckData,
		IsPublished: page.IsPublished,
		Published:   page.PublishedPuckData,
		PublishedAt: page.PublishedAt,
		CreatedAt:   page.CreatedAt,
		UpdatedAt:   page.UpdatedAt,
	}
}

// PublicFromModel returns the storefront projection, or nil when the page
// has never been published.
func PublicFromModel(page *models.StorePage) *PublicPageDTO {
	if page == nil || !page.IsPublished || page.PublishedPuckData == nil {
		return nil
	}
	return &PublicPageDTO{
		Slug:        page.Slug,
		Title:       page.Title,
		Type:        page.Type.String(),
		Content:     *page.PublishedPuckData,
		PublishedAt: page.PublishedAt,
	}
}
