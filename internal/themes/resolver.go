package themes

import (
	"strings"

	"github.com/dukahq/duka-backend/pkg/db/models"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/types"
)

// builtinDefaults is the fallback value for every supported CSS custom
// property. Storefront rendering depends on each key resolving to something,
// so this map is the base layer of every merge.
var builtinDefaults = types.CSSVariables{
	"--background":      "#ffffff",
	"--foreground":      "#111827",
	"--primary":         "#2563eb",
	"--secondary":       "#f3f4f6",
	"--muted":           "#6b7280",
	"--accent":          "#d97706",
	"--border":          "#e5e7eb",
	"--font-heading":    "system-ui, sans-serif",
	"--font-body":       "system-ui, sans-serif",
	"--font-size-base":  "16px",
	"--radius":          "0.375rem",
	"--container-width": "1200px",
}

// BuiltinDefaults returns a copy of the base theme values.
func BuiltinDefaults() types.CSSVariables {
	return builtinDefaults.Clone()
}

// ValidateVariableNames rejects override keys that are not CSS custom
// properties. Every stored override key carries the "--" prefix so the
// storefront can emit the map verbatim as a style block.
func ValidateVariableNames(vars types.CSSVariables) error {
	for key := range vars {
		if !strings.HasPrefix(key, "--") {
			return pkgerrors.New(pkgerrors.CodeValidation, "css variable names must start with --").
				WithDetails(map[string]string{"key": key})
		}
	}
	return nil
}

// Resolve merges theme layers lowest-precedence first: built-in defaults,
// then the template's values, then store overrides. Unknown keys in the
// template or overrides pass through untouched.
func Resolve(template *models.Template, overrides types.CSSVariables) types.CSSVariables {
	layers := []types.CSSVariables{}
	if template != nil && len(template.DefaultCSSVariables) > 0 {
		layers = append(layers, template.DefaultCSSVariables)
	}
	if len(overrides) > 0 {
		layers = append(layers, overrides)
	}
	return builtinDefaults.Merge(layers...)
}
