package enums

import "fmt"

// ProductStatus captures the product listing lifecycle.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusDraft,
	ProductStatusArchived,
}

// String implements fmt.Stringer.
func (p ProductStatus) String() string {
	return string(p)
}

// IsValid reports whether the value matches the Postgres enum.
func (p ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// ProductSource records where a product row originated.
type ProductSource string

const (
	ProductSourceManual ProductSource = "manual"
	ProductSourceImport ProductSource = "import"
	ProductSourceDemo   ProductSource = "demo"
)

var validProductSources = []ProductSource{
	ProductSourceManual,
	ProductSourceImport,
	ProductSourceDemo,
}

// String implements fmt.Stringer.
func (p ProductSource) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductSource.
func (p ProductSource) IsValid() bool {
	for _, candidate := range validProductSources {
		if candidate == p {
			return true
		}
	}
	return false
}
