package enums

import "fmt"

// PageType tags the role a page plays within a storefront.
type PageType string

const (
	PageTypeHome     PageType = "home"
	PageTypeStandard PageType = "standard"
	PageTypeLanding  PageType = "landing"
)

var validPageTypes = []PageType{
	PageTypeHome,
	PageTypeStandard,
	PageTypeLanding,
}

// String implements fmt.Stringer.
func (p PageType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PageType.
func (p PageType) IsValid() bool {
	for _, candidate := range validPageTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePageType converts raw input into a PageType.
func ParsePageType(value string) (PageType, error) {
	for _, candidate := range validPageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid page type %q", value)
}
