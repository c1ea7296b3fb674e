package products

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/internal/media"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/outbox/payloads"
	"github.com/dukahq/duka-backend/pkg/pagination"
	"github.com/dukahq/duka-backend/pkg/types"
)

// VariantInput captures one purchasable variant on create.
type VariantInput struct {
	Title        string
	SKU          *string
	Price        decimal.Decimal
	Currency     *enums.Currency
	Options      map[string]any
	AvailableQty int
}

// MediaInput registers an already-uploaded asset and links it to the product.
type MediaInput struct {
	URL         string
	ContentType string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title       string
	Description *string
	Status      *enums.ProductStatus
	Source      *enums.ProductSource
	Tags        []string
	Variants    []VariantInput
	Media       []MediaInput
}

// UpdateProductInput holds optional mutation values. Nil fields are untouched.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Status      *enums.ProductStatus
	Tags        *[]string
}

// UpdateVariantInput holds optional variant mutations.
type UpdateVariantInput struct {
	Title        *string
	SKU          *string
	Price        *decimal.Decimal
	Currency     *enums.Currency
	Options      *map[string]any
	AvailableQty *int
}

// Service exposes product catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, userID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	SeedProduct(ctx context.Context, store *models.Store, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	UpdateVariant(ctx context.Context, userID, variantID uuid.UUID, input UpdateVariantInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, userID, storeID uuid.UUID, params pagination.Params) (*ProductListDTO, error)
	DeleteProduct(ctx context.Context, userID, productID uuid.UUID) error
	DeleteAllProducts(ctx context.Context, userID, storeID uuid.UUID) (int, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type membershipChecker interface {
	UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo        *Repository
	dbClient    *db.Client
	storeRepo   storeLoader
	memberships membershipChecker
	mediaRepo   *media.Repository
	events      eventEmitter
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, storeRepo storeLoader, memberships membershipChecker, mediaRepo *media.Repository, events eventEmitter) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db client required")
	}
	if storeRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store repository required")
	}
	if memberships == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "membership checker required")
	}
	if mediaRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media repository required")
	}
	if events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event emitter required")
	}
	return &service{
		repo:        repo,
		dbClient:    dbClient,
		storeRepo:   storeRepo,
		memberships: memberships,
		mediaRepo:   mediaRepo,
		events:      events,
	}, nil
}

// CreateProduct creates the product with variants, per-variant inventory,
// and media links in one transaction.
func (s *service) CreateProduct(ctx context.Context, userID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	store, err := s.authorizeStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, store, &userID, input)
}

// SeedProduct creates a product without a membership check. Used by
// onboarding, which has already authorized the owner.
func (s *service) SeedProduct(ctx context.Context, store *models.Store, input CreateProductInput) (*ProductDTO, error) {
	return s.create(ctx, store, nil, input)
}

func (s *service) create(ctx context.Context, store *models.Store, actorID *uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(input.Variants) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one variant is required")
	}
	for _, variant := range input.Variants {
		if strings.TrimSpace(variant.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant title is required")
		}
		if variant.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant price cannot be negative")
		}
		if variant.AvailableQty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_qty cannot be negative")
		}
		if variant.Currency != nil && !variant.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant currency")
		}
	}

	status := enums.ProductStatusActive
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
		}
		status = *input.Status
	}
	source := enums.ProductSourceManual
	if input.Source != nil {
		if !input.Source.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product source")
		}
		source = *input.Source
	}

	var created *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		mediaRepo := s.mediaRepo.WithTx(tx)

		productSlug, err := generateSlug(ctx, repo, store.ID, title)
		if err != nil {
			return err
		}

		product := models.Product{
			StoreID:     store.ID,
			Title:       title,
			Slug:        productSlug,
			Description: input.Description,
			Status:      status,
			Source:      source,
			Tags:        input.Tags,
		}
		for _, variant := range input.Variants {
			currency := store.Currency
			if variant.Currency != nil {
				currency = *variant.Currency
			}
			product.Variants = append(product.Variants, models.ProductVariant{
				Title:    strings.TrimSpace(variant.Title),
				SKU:      variant.SKU,
				Price:    variant.Price,
				Currency: currency,
				Options:  types.JSONMap(variant.Options),
				Inventory: &models.InventoryItem{
					AvailableQty: variant.AvailableQty,
				},
			})
		}

		if _, err := repo.Create(ctx, &product); err != nil {
			if db.IsUniqueViolation(err, "ux_products_store_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use for this store")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
		}

		if len(input.Media) > 0 {
			links := make([]models.ProductMedia, 0, len(input.Media))
			for i, asset := range input.Media {
				url := strings.TrimSpace(asset.URL)
				if url == "" {
					return pkgerrors.New(pkgerrors.CodeValidation, "media url is required")
				}
				contentType := strings.TrimSpace(asset.ContentType)
				if contentType == "" {
					contentType = media.DefaultContentType
				}
				row, err := mediaRepo.Create(ctx, &models.Media{
					StoreID:     store.ID,
					Kind:        enums.MediaKindProduct,
					URL:         url,
					ContentType: contentType,
				})
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create media")
				}
				links = append(links, models.ProductMedia{
					ProductID:  product.ID,
					MediaID:    row.ID,
					Position:   i,
					IsFeatured: i == 0,
				})
			}
			if err := repo.ReplaceMediaLinks(ctx, product.ID, links); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link media")
			}
		}

		var actor *outbox.ActorRef
		if actorID != nil {
			actor = &outbox.ActorRef{UserID: *actorID, TenantID: &store.TenantID}
		}
		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventProductCreated,
			AggregateType: enums.OutboxAggregateProduct,
			AggregateID:   product.ID,
			Actor:         actor,
			Data: payloads.ProductCreatedEvent{
				ProductID: product.ID,
				StoreID:   product.StoreID,
				Title:     product.Title,
				Slug:      product.Slug,
				Source:    product.Source,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit product.created")
		}

		created = &product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, created.ID)
}

// UpdateProduct applies a partial patch. An empty patch issues no write.
func (s *service) UpdateProduct(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, product.StoreID); err != nil {
		return nil, err
	}

	changed := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		// The slug is pinned at creation; renaming does not reslug.
		product.Title = title
		changed = true
	}
	if input.Description != nil {
		product.Description = input.Description
		changed = true
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
		}
		product.Status = *input.Status
		changed = true
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
		changed = true
	}

	if changed {
		if _, err := s.repo.Save(ctx, product); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
		}
	}
	return s.reload(ctx, product.ID)
}

// UpdateVariant patches one variant's price, options, or stock.
func (s *service) UpdateVariant(ctx context.Context, userID, variantID uuid.UUID, input UpdateVariantInput) (*ProductDTO, error) {
	variant, err := s.repo.FindVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
	}
	product, err := s.loadProduct(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, product.StoreID); err != nil {
		return nil, err
	}

	changed := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant title cannot be empty")
		}
		variant.Title = title
		changed = true
	}
	if input.SKU != nil {
		variant.SKU = input.SKU
		changed = true
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant price cannot be negative")
		}
		variant.Price = *input.Price
		changed = true
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant currency")
		}
		variant.Currency = *input.Currency
		changed = true
	}
	if input.Options != nil {
		variant.Options = types.JSONMap(*input.Options)
		changed = true
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if changed {
			if _, err := repo.SaveVariant(ctx, variant); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update variant")
			}
		}
		if input.AvailableQty != nil {
			if *input.AvailableQty < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "available_qty cannot be negative")
			}
			item := variant.Inventory
			if item == nil {
				item = &models.InventoryItem{VariantID: variant.ID}
			}
			item.AvailableQty = *input.AvailableQty
			if _, err := repo.UpsertInventory(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inventory")
			}
			changed = true
		}
		if changed {
			return repo.TouchUpdatedAt(ctx, product.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, product.ID)
}

func (s *service) GetProduct(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, product.StoreID); err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) ListProducts(ctx context.Context, userID, storeID uuid.UUID, params pagination.Params) (*ProductListDTO, error) {
	if _, err := s.authorizeStore(ctx, userID, storeID); err != nil {
		return nil, err
	}
	result, err := s.repo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := &ProductListDTO{
		Products:   make([]ProductDTO, 0, len(result.Products)),
		NextCursor: result.NextCursor,
	}
	for i := range result.Products {
		out.Products = append(out.Products, *FromModel(&result.Products[i]))
	}
	return out, nil
}

func (s *service) DeleteProduct(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return err
	}
	if _, err := s.authorizeStore(ctx, userID, product.StoreID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// DeleteAllProducts removes every product in the store, aggregating
// per-product failures rather than stopping at the first.
func (s *service) DeleteAllProducts(ctx context.Context, userID, storeID uuid.UUID) (int, error) {
	if _, err := s.authorizeStore(ctx, userID, storeID); err != nil {
		return 0, err
	}

	ids, err := s.repo.ListIDsByStore(ctx, storeID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	deleted := 0
	var errs error
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		deleted++
	}
	if errs != nil {
		return deleted, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "delete products")
	}
	return deleted, nil
}

func (s *service) authorizeStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	hasRole, err := s.memberships.UserHasRole(ctx, store.TenantID, userID,
		enums.MemberRoleOwner, enums.MemberRoleAdmin, enums.MemberRoleManager)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
	}
	if !hasRole {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role for this store")
	}
	return store, nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) reload(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return FromModel(product), nil
}
