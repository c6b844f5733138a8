// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
)

// RenderUnauthorized shows a "sign in required" page.
// If backURL is empty, it defaults to /auth.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role.String(), u.Name
	}
	if backURL == "" {
		backURL = "/auth"
	}

	data := pageData{
		Title:      "Sign in required",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    "Please sign in to continue.",
		BackURL:    backURL,
	}

	templates.Render(w, r, "error_unauthorized", data)
}

// RenderForbidden shows the access-denied page, naming the role the
// page requires and the role the user holds.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL, required string, held models.Role) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role.String(), u.Name
	}
	if backURL == "" {
		backURL = "/dashboard"
	}
	if msg == "" {
		msg = "You don't have permission to view this page."
	}

	data := pageData{
		Title:        "Access denied",
		IsLoggedIn:   signed,
		Role:         role,
		UserName:     name,
		Message:      msg,
		RequiredRole: required,
		HeldRole:     held.String(),
		BackURL:      backURL,
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", data)
}
