package auditlog

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes carries its own role gate instead of inheriting the admin
// one: moderators may read the trail too (admins pass via the role
// override). Only GET routes exist, so the access is read-only.
func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole(models.RoleModerator))

	r.Get("/", h.ServeList)
	return r
}
