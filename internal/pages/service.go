package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/outbox/payloads"
	slugpkg "github.com/dukahq/duka-backend/pkg/slug"
	"github.com/dukahq/duka-backend/pkg/types"
)

// HomeSlug is the reserved slug of the system home page.
const HomeSlug = "home"

// CreatePageInput holds the validated payload to create a page.
type CreatePageInput struct {
	Title   string
	Slug    string
	Type    enums.PageType
	Content *types.PuckDocument
}

// UpdatePageInput holds optional draft mutations. Nil fields are untouched.
type UpdatePageInput struct {
	Title   *string
	Slug    *string
	Content *types.PuckDocument
}

// Service exposes page management operations.
type Service interface {
	CreatePage(ctx context.Context, userID, storeID uuid.UUID, input CreatePageInput) (*PageDTO, error)
	UpdatePage(ctx context.Context, userID, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error)
	PublishPage(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error)
	GetPage(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error)
	ListPages(ctx context.Context, userID, storeID uuid.UUID) ([]PageDTO, error)
	DeletePage(ctx context.Context, userID, pageID uuid.UUID) error
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
	events      eventEmitter
}

// NewService constructs a page service instance.
func NewService(repo *Repository, dbClient *db.Client, storeRepo storeLoader, memberships membershipChecker, events eventEmitter) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page repository required")
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
	if events == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event emitter required")
	}
	return &service{
		repo:        repo,
		dbClient:    dbClient,
		storeRepo:   storeRepo,
		memberships: memberships,
		events:      events,
	}, nil
}

// NewHomePage builds the system home page every store starts with. The
// content comes from the template when it provides one.
func NewHomePage(storeID uuid.UUID, templateHome *types.PuckDocument) models.StorePage {
	content := types.EmptyPuckDocument()
	if templateHome != nil && !templateHome.IsZero() {
		content = *templateHome
	}
	return models.StorePage{
		StoreID:  storeID,
		Slug:     HomeSlug,
		Title:    "Home",
		Type:     enums.PageTypeHome,
		IsSystem: true,
		PuckData: content,
	}
}

func (s *service) CreatePage(ctx context.Context, userID, storeID uuid.UUID, input CreatePageInput) (*PageDTO, error) {
	if _, err := s.authorizeStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page type")
	}
	if input.Type == enums.PageTypeHome {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "home page already exists for this store")
	}

	pageSlug := strings.TrimSpace(input.Slug)
	if pageSlug == "" {
		pageSlug = slugpkg.Make(title)
	}
	if !slugpkg.IsValid(pageSlug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must contain only lowercase letters, digits, and hyphens")
	}
	if pageSlug == HomeSlug {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug is reserved")
	}

	content := types.EmptyPuckDocument()
	if input.Content != nil && !input.Content.IsZero() {
		content = *input.Content
	}

	page := models.StorePage{
		StoreID:  storeID,
		Slug:     pageSlug,
		Title:    title,
		Type:     input.Type,
		PuckData: content,
	}
	if _, err := s.repo.Create(ctx, &page); err != nil {
		if db.IsUniqueViolation(err, "ux_store_pages_store_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "page slug already in use for this store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create page")
	}
	return FromModel(&page), nil
}

func (s *service) UpdatePage(ctx context.Context, userID, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error) {
	page, err := s.loadPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, page.StoreID); err != nil {
		return nil, err
	}

	changed := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		page.Title = title
		changed = true
	}

	if input.Slug != nil {
		if page.IsSystem {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "system page slug cannot change")
		}
		newSlug := strings.TrimSpace(*input.Slug)
		if !slugpkg.IsValid(newSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must contain only lowercase letters, digits, and hyphens")
		}
		if newSlug == HomeSlug {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug is reserved")
		}
		page.Slug = newSlug
		changed = true
	}

	if input.Content != nil {
		page.PuckData = *input.Content
		changed = true
	}

	if !changed {
		return FromModel(page), nil
	}

	if _, err := s.repo.Save(ctx, page); err != nil {
		if db.IsUniqueViolation(err, "ux_store_pages_store_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "page slug already in use for this store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update page")
	}
	return FromModel(page), nil
}

// PublishPage snapshots the draft as the published content. Publishing an
// already-published page refreshes the snapshot and advances the timestamp.
func (s *service) PublishPage(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error) {
	page, err := s.loadPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, page.StoreID); err != nil {
		return nil, err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		snapshot := page.PuckData
		now := time.Now().UTC()
		page.PublishedPuckData = &snapshot
		page.IsPublished = true
		page.PublishedAt = &now

		if _, err := repo.Save(ctx, page); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "publish page")
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventPagePublished,
			AggregateType: enums.OutboxAggregatePage,
			AggregateID:   page.ID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Data: payloads.PagePublishedEvent{
				PageID:      page.ID,
				StoreID:     page.StoreID,
				Slug:        page.Slug,
				Type:        page.Type,
				PublishedAt: now,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(page), nil
}

func (s *service) GetPage(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error) {
	page, err := s.loadPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeStore(ctx, userID, page.StoreID); err != nil {
		return nil, err
	}
	return FromModel(page), nil
}

func (s *service) ListPages(ctx context.Context, userID, storeID uuid.UUID) ([]PageDTO, error) {
	if _, err := s.authorizeStore(ctx, userID, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pages")
	}
	out := make([]PageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// DeletePage removes a page. System pages stay for the life of the store.
func (s *service) DeletePage(ctx context.Context, userID, pageID uuid.UUID) error {
	page, err := s.loadPage(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := s.authorizeStore(ctx, userID, page.StoreID); err != nil {
		return err
	}
	if page.IsSystem {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "system page cannot be deleted")
	}

	if err := s.repo.Delete(ctx, page.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete page")
	}
	return nil
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

func (s *service) loadPage(ctx context.Context, pageID uuid.UUID) (*models.StorePage, error) {
	page, err := s.repo.FindByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load page")
	}
	return page, nil
}
