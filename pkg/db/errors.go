package db

import "strings"

// IsUniqueViolation reports whether the provided error is a unique-constraint
// violation. When constraintName is given, a match on that name wins; drivers
// that only report the offending columns (sqlite) fall back to the generic
// unique-violation text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
