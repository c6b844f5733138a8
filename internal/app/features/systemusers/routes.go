package systemusers

import (
	"github.com/go-chi/chi/v5"
)

// Routes assumes the admin router already enforces the admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{userID}/role", h.HandleGrantRole)
	r.Post("/{userID}/status", h.HandleSetStatus)
	return r
}
