package notifications

import (
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeFeed)
	r.Get("/stream", h.ServeStream)
	r.Get("/unread-count", h.ServeUnreadCount)
	r.Post("/read-all", h.HandleMarkAllRead)
	r.Post("/{notificationID}/read", h.HandleMarkRead)
	return r
}
