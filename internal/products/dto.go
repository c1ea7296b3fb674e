package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahq/duka-backend/pkg/db/models"
)

// ProductDTO represents the product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID         `json:"id"`
	StoreID     uuid.UUID         `json:"store_id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description *string           `json:"description,omitempty"`
	Status      string            `json:"status"`
	Source      string            `json:"source"`
	Tags        []string          `json:"tags,omitempty"`
	Variants    []VariantDTO      `json:"variants"`
	Media       []ProductMediaDTO `json:"media,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VariantDTO exposes a variant with its price and stock.
type VariantDTO struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	SKU          *string         `json:"sku,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Options      map[string]any  `json:"options,omitempty"`
	AvailableQty int             `json:"available_qty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductMediaDTO captures an attached media position.
type ProductMediaDTO struct {
	MediaID    uuid.UUID `json:"media_id"`
	Position   int       `json:"position"`
	IsFeatured bool      `json:"is_featured"`
}

// ProductListDTO is one page of products plus the cursor for the next.
type ProductListDTO struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func FromModel(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		Status:      product.Status.String(),
		Source:      product.Source.String(),
		Tags:        product.Tags,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	dto.Variants = make([]VariantDTO, 0, len(product.Variants))
	for i := range product.Variants {
		dto.Variants = append(dto.Variants, variantFromModel(&product.Variants[i]))
	}
	for _, link := range product.Media {
		dto.Media = append(dto.Media, ProductMediaDTO{
			MediaID:    link.MediaID,
			Position:   link.Position,
			IsFeatured: link.IsFeatured,
		})
	}
	return dto
}

func variantFromModel(variant *models.ProductVariant) VariantDTO {
	dto := VariantDTO{
		ID:        variant.ID,
		Title:     variant.Title,
		SKU:       variant.SKU,
		Price:     variant.Price,
		Currency:  variant.Currency.String(),
		Options:   variant.Options,
		CreatedAt: variant.CreatedAt,
		UpdatedAt: variant.UpdatedAt,
	}
	if variant.Inventory != nil {
		dto.AvailableQty = variant.Inventory.AvailableQty
	}
	return dto
}
