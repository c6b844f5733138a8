package dashboard

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeDashboard)
	return r
}
