// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	messagestore "github.com/mizanlegal/mizan/internal/app/store/messages"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the message center: the personal inbox, the general
// inquiry form, and the moderators' inquiry queue.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Messages *messagestore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, notif *notificationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Messages: messagestore.New(db, notif),
		Users:    userstore.New(db),
	}
}

type messageVM struct {
	models.Message
	SenderName string
	Mine       bool
}

type inboxViewData struct {
	viewdata.BaseVM
	Inbox       []messageVM
	Inquiries   []messageVM
	IsModerator bool
	ErrorMsg    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /messages                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeInbox(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	msgs, err := h.Messages.ListForUser(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list inbox", err, "تعذّر تحميل الرسائل.", "/dashboard")
		return
	}

	vm := inboxViewData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "الرسائل", "/dashboard"),
		Inbox:       h.decorate(ctx, msgs, userID),
		IsModerator: authz.HasAnyRole(r, models.RoleModerator),
		ErrorMsg:    r.URL.Query().Get("error"),
	}

	// Moderators also see the general inquiry queue from the public
	// contact flow.
	if vm.IsModerator {
		inquiries, err := h.Messages.ListInquiries(ctx)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list inquiries", err, "تعذّر تحميل الاستفسارات.", "/dashboard")
			return
		}
		vm.Inquiries = h.decorate(ctx, inquiries, userID)
	}

	templates.Render(w, r, "messages_inbox", vm)
}

// decorate resolves sender names for display. A failed lookup leaves
// the name blank.
func (h *Handler) decorate(ctx context.Context, msgs []models.Message, viewerID primitive.ObjectID) []messageVM {
	ids := make([]primitive.ObjectID, 0, len(msgs))
	seen := make(map[primitive.ObjectID]bool)
	for _, m := range msgs {
		if !seen[m.FromID] {
			seen[m.FromID] = true
			ids = append(ids, m.FromID)
		}
	}

	names := make(map[primitive.ObjectID]string)
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("load message senders failed", zap.Error(err))
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	out := make([]messageVM, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageVM{
			Message:    m,
			SenderName: names[m.FromID],
			Mine:       m.FromID == viewerID,
		})
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /messages – general inquiry                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSendInquiry files a general inquiry. It has no recipient; the
// moderator queue picks it up.
func (h *Handler) HandleSendInquiry(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err := h.Messages.Send(ctx, models.Message{
		FromID: userID,
		Body:   r.FormValue("body"),
	})
	switch {
	case errors.Is(err, messagestore.ErrEmptyBody):
		http.Redirect(w, r, "/messages?error=empty", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "send inquiry", err, "تعذّر إرسال الاستفسار.", "/messages")
		return
	}

	http.Redirect(w, r, "/messages", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /messages/{messageID}/reply – moderator reply to an inquiry            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad message id", "الرسالة غير موجودة.", "/messages")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var original models.Message
	if err := h.DB.Collection("messages").FindOne(ctx, bson.M{"_id": id}).Decode(&original); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "message not found", "الرسالة غير موجودة.", "/messages")
			return
		}
		h.ErrLog.LogServerError(w, r, "load message", err, "تعذّر تحميل الرسالة.", "/messages")
		return
	}

	sender := original.FromID
	_, err = h.Messages.Send(ctx, models.Message{
		FromID: userID,
		ToID:   &sender,
		Body:   r.FormValue("body"),
	})
	switch {
	case errors.Is(err, messagestore.ErrEmptyBody):
		http.Redirect(w, r, "/messages?error=empty", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "send reply", err, "تعذّر إرسال الرد.", "/messages")
		return
	}

	// The inquiry is handled once it has a reply.
	if err := h.Messages.MarkInquiryRead(ctx, original.ID); err != nil {
		h.Log.Warn("mark inquiry read failed", zap.Error(err))
	}

	http.Redirect(w, r, "/messages", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /messages/{messageID}/read                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad message id", "الرسالة غير موجودة.", "/messages")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Messages.MarkRead(ctx, id, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "mark message read", err, "تعذّر تحديث الرسالة.", "/messages")
		return
	}

	http.Redirect(w, r, "/messages", http.StatusSeeOther)
}
