package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	invalidRe  = regexp.MustCompile(`[^a-z0-9-]+`)
	collapseRe = regexp.MustCompile(`-{2,}`)
)

// Make lowercases the value and reduces it to URL-safe slug characters.
// Whitespace runs become single hyphens; anything else is dropped.
func Make(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = strings.Join(strings.Fields(s), "-")
	s = invalidRe.ReplaceAllString(s, "-")
	s = collapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether the value is already a well-formed slug.
func IsValid(value string) bool {
	return value != "" && value == Make(value)
}

// WithSuffix appends a numeric suffix used to de-duplicate within a scope.
// The first occurrence keeps the bare base.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
