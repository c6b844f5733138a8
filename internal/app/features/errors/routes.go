// internal/app/features/errors/routes.go
package errors

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the error pages.
func Routes(r chi.Router) {
	h := NewHandler()
	r.Get("/forbidden", h.Forbidden)
	r.Get("/unauthorized", h.Unauthorized)
}
