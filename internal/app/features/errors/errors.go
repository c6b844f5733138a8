// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/domain/models"
)

// pageData is the view model for error pages. RequiredRole and
// HeldRole are both shown on the access-denied page so the user can
// see why they were refused.
type pageData struct {
	Title        string
	IsLoggedIn   bool
	Role         string
	UserName     string
	Message      string
	RequiredRole string
	HeldRole     string
	BackURL      string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders the access-denied page. The required role arrives
// as a query parameter from the route guard; the held role comes from
// the session.
// GET /forbidden?required=admin
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", forbiddenData(r))
}

// forbiddenData builds the access-denied view model. Both the role
// the guard demanded and the role the user actually holds end up on
// the page, so a refused user sees why.
func forbiddenData(r *http.Request) pageData {
	role, name, _, signedIn := authz.UserCtx(r)

	held := ""
	if signedIn {
		held = role.String()
	}

	return pageData{
		Title:        "Access denied",
		IsLoggedIn:   signedIn,
		Role:         role.String(),
		UserName:     name,
		Message:      "You don't have permission to view this page.",
		RequiredRole: r.URL.Query().Get("required"),
		HeldRole:     held,
		BackURL:      backForRole(role, signedIn),
	}
}

// Unauthorized renders a "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Sign in required",
		IsLoggedIn: signedIn,
		Role:       role.String(),
		UserName:   name,
		Message:    "Please sign in to continue.",
		BackURL:    "/auth",
	}

	templates.Render(w, r, "error_unauthorized", data)
}

// backForRole picks a sensible destination for the "back" link:
// signed-in users return to their dashboard, visitors to the home page.
func backForRole(role models.Role, signedIn bool) string {
	if !signedIn {
		return "/"
	}
	return "/dashboard"
}
