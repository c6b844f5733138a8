package messages

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)

	r.Get("/", h.ServeInbox)
	r.Post("/", h.HandleSendInquiry)
	r.Post("/{messageID}/read", h.HandleMarkRead)

	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.RequireRole(models.RoleModerator))
		r.Post("/{messageID}/reply", h.HandleReply)
	})

	return r
}
