package enums

import "fmt"

// StoreStatus captures the storefront lifecycle.
type StoreStatus string

const (
	StoreStatusDraft    StoreStatus = "draft"
	StoreStatusActive   StoreStatus = "active"
	StoreStatusArchived StoreStatus = "archived"
)

var validStoreStatuses = []StoreStatus{
	StoreStatusDraft,
	StoreStatusActive,
	StoreStatusArchived,
}

// String implements fmt.Stringer.
func (s StoreStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the Postgres enum.
func (s StoreStatus) IsValid() bool {
	for _, candidate := range validStoreStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreStatus converts raw input into a StoreStatus.
func ParseStoreStatus(value string) (StoreStatus, error) {
	for _, candidate := range validStoreStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store status %q", value)
}
