package consulttypesadmin

import (
	"github.com/go-chi/chi/v5"
)

// Routes assumes the admin router already enforces the admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Get("/{typeID}/edit", h.ServeEdit)
	r.Post("/{typeID}", h.HandleUpdate)
	r.Post("/{typeID}/delete", h.HandleDelete)
	return r
}
