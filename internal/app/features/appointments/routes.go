package appointments

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Get("/slots", h.ServeSlots)
	r.Post("/", h.HandleBook)
	r.Post("/{appointmentID}/cancel", h.HandleCancel)
	return r
}
