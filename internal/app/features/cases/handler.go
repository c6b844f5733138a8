// internal/app/features/cases/handler.go
package cases

import (
	"context"
	"net/http"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	documentstore "github.com/mizanlegal/mizan/internal/app/store/documents"
	messagestore "github.com/mizanlegal/mizan/internal/app/store/messages"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the case file area: lists, the case detail page with
// its documents and message thread, and the staff actions on a case.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	AuditLog  *auditlog.Logger
	Storage   storage.Store
	Cases     *casestore.Store
	Documents *documentstore.Store
	Messages  *messagestore.Store
	Users     *userstore.Store
	Roles     *rolestore.Store
}

func NewHandler(
	db *mongo.Database,
	notif *notificationstore.Store,
	store storage.Store,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		AuditLog:  audit,
		Storage:   store,
		Cases:     casestore.New(db, notif),
		Documents: documentstore.New(db, notif),
		Messages:  messagestore.New(db, notif),
		Users:     userstore.New(db),
		Roles:     rolestore.New(db),
	}
}

// canView reports whether the current user may open the case. Clients
// see their own cases, lawyers their assigned ones; moderators and
// admins see everything.
func canView(r *http.Request, c *models.LegalCase) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleAdmin || role == models.RoleModerator {
		return true
	}
	return casestore.CanAccess(c, userID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /cases – case list, shaped by role                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type listViewData struct {
	viewdata.BaseVM
	Cases       []models.LegalCase
	IsStaffView bool
	CanCreate   bool
	Status      string
	Search      string
	StatusOpts  []statusOpt
}

type statusOpt struct {
	Value string
	Label string
}

func statusOptions() []statusOpt {
	return []statusOpt{
		{models.CaseOpen, "مفتوحة"},
		{models.CaseInReview, "قيد المراجعة"},
		{models.CaseActive, "نشطة"},
		{models.CaseClosed, "مغلقة"},
	}
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		list []models.LegalCase
		err  error
	)

	vm := listViewData{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "القضايا", "/dashboard"),
		Status:     query.Get(r, "status"),
		Search:     query.Get(r, "q"),
		StatusOpts: statusOptions(),
	}

	switch role {
	case models.RoleAdmin, models.RoleModerator:
		vm.IsStaffView = true
		vm.CanCreate = true
		list, err = h.Cases.List(ctx, casestore.ListFilter{
			Status: vm.Status,
			Search: vm.Search,
		})
	case models.RoleLawyer:
		vm.IsStaffView = true
		list, err = h.Cases.ListForLawyer(ctx, userID)
	default:
		list, err = h.Cases.ListForClient(ctx, userID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list cases", err, "تعذّر تحميل القضايا.", "/dashboard")
		return
	}
	vm.Cases = list

	templates.Render(w, r, "cases_list", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Shared loader                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// loadCase fetches the case from the URL and enforces access. On any
// failure it writes the response and returns nil.
func (h *Handler) loadCase(w http.ResponseWriter, r *http.Request, ctx context.Context, param string) *models.LegalCase {
	id, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad case id", "القضية غير موجودة.", "/cases")
		return nil
	}

	c, err := h.Cases.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "case not found", "القضية غير موجودة.", "/cases")
		return nil
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load case", err, "تعذّر تحميل القضية.", "/cases")
		return nil
	}

	if !canView(r, c) {
		h.ErrLog.LogNotFound(w, r, "case access denied", "القضية غير موجودة.", "/cases")
		return nil
	}
	return c
}
