package cases

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{caseID}", h.ServeDetail)
	r.Post("/{caseID}/messages", h.HandleSendMessage)
	r.Post("/{caseID}/documents", h.HandleUpload)
	r.Get("/{caseID}/documents/{documentID}", h.ServeDownload)

	// Staff-only case management.
	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.RequireRole(models.RoleAdmin, models.RoleModerator))
		r.Get("/new", h.ServeNew)
		r.Post("/", h.HandleCreate)
		r.Post("/{caseID}/assign", h.HandleAssign)
	})

	// Lawyers may move their own cases through statuses too.
	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.RequireRole(models.RoleAdmin, models.RoleModerator, models.RoleLawyer))
		r.Post("/{caseID}/status", h.HandleSetStatus)
	})

	return r
}
