package themes

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/types"
)

// ThemeDTO carries both the raw overrides and the fully resolved variable map.
type ThemeDTO struct {
	ID           uuid.UUID          `json:"id"`
	StoreID      uuid.UUID          `json:"store_id"`
	TemplateID   *uuid.UUID         `json:"template_id,omitempty"`
	TemplateSlug *string            `json:"template_slug,omitempty"`
	Overrides    types.CSSVariables `json:"overrides"`
	Resolved     types.CSSVariables `json:"resolved"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func FromModel(theme *models.StoreTheme, template *models.Template) *ThemeDTO {
	if theme == nil {
		return nil
	}
	dto := &ThemeDTO{
		ID:         theme.ID,
		StoreID:    theme.StoreID,
		TemplateID: theme.TemplateID,
		Overrides:  theme.CSSVariables,
		Resolved:   Resolve(template, theme.CSSVariables),
		UpdatedAt:  theme.UpdatedAt,
	}
	if dto.Overrides == nil {
		dto.Overrides = types.CSSVariables{}
	}
	if template != nil {
		slug := template.Slug
		dto.TemplateSlug = &slug
	}
	return dto
}
