// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in landing page. Each role gets its own
// view of the same URL.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Appointments  *appointmentstore.Store
	Cases         *casestore.Store
	Notifications *notificationstore.Store
}

func NewHandler(db *mongo.Database, notif *notificationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Appointments:  appointmentstore.New(db, notif),
		Cases:         casestore.New(db, notif),
		Notifications: notif,
	}
}

// ServeDashboard dispatches to the view for the user's role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/auth?redirect=/dashboard", http.StatusSeeOther)
		return
	}

	switch role {
	case models.RoleAdmin:
		h.serveAdmin(w, r)
	case models.RoleLawyer:
		h.serveLawyer(w, r)
	case models.RoleModerator:
		h.serveModerator(w, r)
	default:
		h.serveClient(w, r)
	}
}
