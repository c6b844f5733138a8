// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/notifyhub"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the notification feed page, the live event stream,
// and the mark-read endpoints.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Notifications *notificationstore.Store
	Hub           *notifyhub.Hub
}

func NewHandler(db *mongo.Database, notif *notificationstore.Store, hub *notifyhub.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Notifications: notif,
		Hub:           hub,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /notifications – feed page                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Notifications.ListRecent(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications", err, "تعذّر تحميل الإشعارات.", "/dashboard")
		return
	}
	unread, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count unread notifications", err, "تعذّر تحميل الإشعارات.", "/dashboard")
		return
	}

	feed := notifyhub.NewFeed(items, int(unread))

	data := struct {
		viewdata.BaseVM
		Items  []models.Notification
		Unread int
	}{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "الإشعارات", "/dashboard"),
		Items:  feed.Items,
		Unread: feed.Unread,
	}

	templates.Render(w, r, "notifications_feed", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /notifications/stream – server-sent events                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeStream pushes feed events to the browser over SSE. Each event
// is a JSON envelope with the kind and the notification document, so
// the page can splice inserts and updates into its local feed.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.Hub.Subscribe(u.ID)
	defer cancel()

	// Tell the client the stream is live before the first event.
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(streamEvent{
				Kind:         string(ev.Kind),
				Notification: ev.Notification,
			})
			if err != nil {
				h.Log.Warn("marshal stream event failed", zap.Error(err))
				continue
			}
			w.Write([]byte("data: "))
			w.Write(payload)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

type streamEvent struct {
	Kind         string              `json:"kind"`
	Notification models.Notification `json:"notification"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /notifications/{notificationID}/read                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "notificationID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad notification id", err, "الإشعار غير موجود.", "/notifications")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "mark notification read", err, "تعذّر تحديث الإشعار.", "/notifications")
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /notifications/read-all                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "mark all notifications read", err, "تعذّر تحديث الإشعارات.", "/notifications")
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /notifications/unread-count – bell badge JSON                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	count, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		http.Error(w, "count failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"unread": count})
}
