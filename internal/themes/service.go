package themes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/types"
)

// UpdateThemeInput holds optional mutation values for a store theme.
// Nil fields are left untouched.
type UpdateThemeInput struct {
	TemplateSlug *string
	Variables    types.CSSVariables
}

// Service exposes theme read and mutation operations.
type Service interface {
	GetTheme(ctx context.Context, userID, storeID uuid.UUID) (*ThemeDTO, error)
	UpdateTheme(ctx context.Context, userID, storeID uuid.UUID, input UpdateThemeInput) (*ThemeDTO, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type membershipChecker interface {
	UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

type templateReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	FindBySlug(ctx context.Context, slug string) (*models.Template, error)
}

type service struct {
	repo        *Repository
	storeRepo   storeLoader
	memberships membershipChecker
	templates   templateReader
}

// NewService constructs a theme service instance.
func NewService(repo *Repository, storeRepo storeLoader, memberships membershipChecker, templates templateReader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "theme repository required")
	}
	if storeRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store repository required")
	}
	if memberships == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "membership checker required")
	}
	if templates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "template repository required")
	}
	return &service{
		repo:        repo,
		storeRepo:   storeRepo,
		memberships: memberships,
		templates:   templates,
	}, nil
}

func (s *service) GetTheme(ctx context.Context, userID, storeID uuid.UUID) (*ThemeDTO, error) {
	if _, err := s.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	theme, err := s.loadTheme(ctx, storeID)
	if err != nil {
		return nil, err
	}

	template, err := s.loadTemplate(ctx, theme.TemplateID)
	if err != nil {
		return nil, err
	}
	return FromModel(theme, template), nil
}

// UpdateTheme applies a partial patch: a new template selection, extra
// variable overrides, or both. An empty patch performs no write.
func (s *service) UpdateTheme(ctx context.Context, userID, storeID uuid.UUID, input UpdateThemeInput) (*ThemeDTO, error) {
	if _, err := s.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	theme, err := s.loadTheme(ctx, storeID)
	if err != nil {
		return nil, err
	}

	changed := false

	var template *models.Template
	if input.TemplateSlug != nil {
		templateSlug := strings.TrimSpace(*input.TemplateSlug)
		if templateSlug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "template_slug cannot be empty")
		}
		template, err = s.templates.FindBySlug(ctx, templateSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template")
		}
		theme.TemplateID = &template.ID
		changed = true
	}

	if len(input.Variables) > 0 {
		if err := ValidateVariableNames(input.Variables); err != nil {
			return nil, err
		}
		theme.CSSVariables = theme.CSSVariables.Merge(input.Variables)
		changed = true
	}

	if changed {
		if _, err := s.repo.Save(ctx, theme); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save theme")
		}
	}

	if template == nil {
		template, err = s.loadTemplate(ctx, theme.TemplateID)
		if err != nil {
			return nil, err
		}
	}
	return FromModel(theme, template), nil
}

func (s *service) authorize(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
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

func (s *service) loadTheme(ctx context.Context, storeID uuid.UUID) (*models.StoreTheme, error) {
	theme, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "theme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load theme")
	}
	return theme, nil
}

func (s *service) loadTemplate(ctx context.Context, templateID *uuid.UUID) (*models.Template, error) {
	if templateID == nil {
		return nil, nil
	}
	template, err := s.templates.FindByID(ctx, *templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template")
	}
	return template, nil
}
