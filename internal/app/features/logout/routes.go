package logout

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	// GET supported so a plain link can sign out.
	r.Get("/", h.HandleLogout)
	return r
}
