// Package normalize provides input normalization helpers used by
// handlers and stores before persisting or querying user-supplied
// values. Keeping normalization in one place means the stored value
// and the query value always agree.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace but preserves case; display names keep the
// casing the user typed.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// AuthMethod trims and lowercases an auth method value
// (password, google).
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lang trims and lowercases a language code, keeping only the
// primary subtag ("ar-JO" becomes "ar").
func Lang(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, "-"); i > 0 {
		s = s[:i]
	}
	return s
}

// QueryParam trims whitespace from a query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// SearchKey folds a value for case- and accent-insensitive matching.
// Used for the *_ci companion fields on users and cases, so Arabic
// and Latin names compare predictably.
func SearchKey(s string) string {
	return text.Fold(strings.TrimSpace(s))
}
