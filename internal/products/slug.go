package products

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	slugpkg "github.com/dukahq/duka-backend/pkg/slug"
)

// maxSlugAttempts bounds the suffix search; beyond this many collisions the
// store almost certainly has a pathological naming pattern.
const maxSlugAttempts = 100

type slugChecker interface {
	SlugExists(ctx context.Context, storeID uuid.UUID, productSlug string) (bool, error)
}

// generateSlug derives a store-unique slug from the title. The first
// collision gets "-2", the next "-3", and so on.
func generateSlug(ctx context.Context, repo slugChecker, storeID uuid.UUID, title string) (string, error) {
	base := slugpkg.Make(title)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title must contain at least one slug-safe character")
	}

	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := slugpkg.WithSuffix(base, n)
		taken, err := repo.SlugExists(ctx, storeID, candidate)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product slug")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique product slug")
}
