package profile

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeProfile)
	r.Post("/", h.HandleUpdateProfile)
	r.Post("/password", h.HandleChangePassword)
	return r
}
