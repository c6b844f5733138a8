// internal/app/features/consulttypesadmin/handler.go
package consulttypesadmin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	consulttypestore "github.com/mizanlegal/mizan/internal/app/store/consulttypes"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin CRUD for the bookable consultation types.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Types    *consulttypestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Types:    consulttypestore.New(db),
	}
}

type listViewData struct {
	viewdata.BaseVM
	Types []models.ConsultationType
}

type formViewData struct {
	viewdata.BaseVM
	Type     models.ConsultationType
	IsEdit   bool
	ErrorMsg string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/consultation-types                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	types, err := h.Types.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list consultation types", err, "تعذّر تحميل أنواع الاستشارات.", "/dashboard")
		return
	}

	vm := listViewData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "أنواع الاستشارات", "/dashboard"),
		Types:  types,
	}
	templates.Render(w, r, "consulttypesadmin_list", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Form pages                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formViewData{Type: models.ConsultationType{DurationMinutes: 30, Status: "active"}})
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ct := h.loadType(w, r, ctx)
	if ct == nil {
		return
	}
	h.renderForm(w, r, formViewData{Type: *ct, IsEdit: true})
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, vm formViewData) {
	title := "نوع استشارة جديد"
	if vm.IsEdit {
		title = "تعديل نوع استشارة"
	}
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, title, "/admin/consultation-types")
	templates.Render(w, r, "consulttypesadmin_form", vm)
}

func (h *Handler) loadType(w http.ResponseWriter, r *http.Request, ctx context.Context) *models.ConsultationType {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "typeID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad consultation type id", "النوع غير موجود.", "/admin/consultation-types")
		return nil
	}
	ct, err := h.Types.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "consultation type not found", "النوع غير موجود.", "/admin/consultation-types")
		return nil
	}
	return ct
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mutations                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ct, errMsg := typeFromForm(r)
	if errMsg != "" {
		h.renderForm(w, r, formViewData{Type: ct, ErrorMsg: errMsg})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Types.Create(ctx, ct)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create consultation type", err, "تعذّر إنشاء النوع.", "/admin/consultation-types")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "consultation_type_created", map[string]string{
		"type_id": created.ID.Hex(),
		"name":    created.Name,
	})
	http.Redirect(w, r, "/admin/consultation-types", http.StatusSeeOther)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing := h.loadType(w, r, ctx)
	if existing == nil {
		return
	}

	ct, errMsg := typeFromForm(r)
	if errMsg != "" {
		ct.ID = existing.ID
		h.renderForm(w, r, formViewData{Type: ct, IsEdit: true, ErrorMsg: errMsg})
		return
	}

	if err := h.Types.Update(ctx, existing.ID, ct); err != nil {
		h.ErrLog.LogServerError(w, r, "update consultation type", err, "تعذّر تحديث النوع.", "/admin/consultation-types")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "consultation_type_updated", map[string]string{
		"type_id": existing.ID.Hex(),
		"name":    ct.Name,
	})
	http.Redirect(w, r, "/admin/consultation-types", http.StatusSeeOther)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing := h.loadType(w, r, ctx)
	if existing == nil {
		return
	}

	if err := h.Types.Delete(ctx, existing.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete consultation type", err, "تعذّر حذف النوع.", "/admin/consultation-types")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "consultation_type_deleted", map[string]string{
		"type_id": existing.ID.Hex(),
		"name":    existing.Name,
	})
	http.Redirect(w, r, "/admin/consultation-types", http.StatusSeeOther)
}

func typeFromForm(r *http.Request) (models.ConsultationType, string) {
	ct := models.ConsultationType{
		Name:        strings.TrimSpace(r.FormValue("name")),
		NameAr:      strings.TrimSpace(r.FormValue("name_ar")),
		Description: strings.TrimSpace(r.FormValue("description")),
		FeeWaived:   r.FormValue("fee_waived") == "on",
		Status:      r.FormValue("status"),
	}
	ct.DurationMinutes, _ = strconv.Atoi(r.FormValue("duration_minutes"))
	ct.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))

	if ct.Name == "" || ct.NameAr == "" {
		return ct, "الاسم مطلوب بالعربية والإنجليزية."
	}
	if ct.DurationMinutes < 0 {
		return ct, "المدة غير صالحة."
	}
	if ct.Status != "active" && ct.Status != "disabled" {
		ct.Status = "active"
	}
	return ct, ""
}
