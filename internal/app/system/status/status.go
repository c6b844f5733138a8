// Package status defines the account status values shared by stores
// and handlers.
package status

// Account status values.
const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a recognized status value.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
