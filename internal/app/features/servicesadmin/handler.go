// internal/app/features/servicesadmin/handler.go
package servicesadmin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	servicestore "github.com/mizanlegal/mizan/internal/app/store/services"
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

// Handler owns the admin CRUD for the public services and initiatives
// catalog.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Services *servicestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Services: servicestore.New(db),
	}
}

type listViewData struct {
	viewdata.BaseVM
	Services []models.Service
}

type formViewData struct {
	viewdata.BaseVM
	Service  models.Service
	IsEdit   bool
	ErrorMsg string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/services                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	services, err := h.Services.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list services", err, "تعذّر تحميل الخدمات.", "/dashboard")
		return
	}

	vm := listViewData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "الخدمات", "/dashboard"),
		Services: services,
	}
	templates.Render(w, r, "servicesadmin_list", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/services/new, GET /admin/services/{serviceID}/edit               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formViewData{Service: models.Service{Category: "service", Status: "active"}})
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	svc := h.loadService(w, r, ctx)
	if svc == nil {
		return
	}
	h.renderForm(w, r, formViewData{Service: *svc, IsEdit: true})
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, vm formViewData) {
	title := "خدمة جديدة"
	if vm.IsEdit {
		title = "تعديل خدمة"
	}
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, title, "/admin/services")
	templates.Render(w, r, "servicesadmin_form", vm)
}

func (h *Handler) loadService(w http.ResponseWriter, r *http.Request, ctx context.Context) *models.Service {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "serviceID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad service id", "الخدمة غير موجودة.", "/admin/services")
		return nil
	}
	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "service not found", "الخدمة غير موجودة.", "/admin/services")
		return nil
	}
	return svc
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/services, POST /admin/services/{serviceID}                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	svc, errMsg := serviceFromForm(r)
	if errMsg != "" {
		h.renderForm(w, r, formViewData{Service: svc, ErrorMsg: errMsg})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Services.Create(ctx, svc)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create service", err, "تعذّر إنشاء الخدمة.", "/admin/services")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "service_created", map[string]string{
		"service_id": created.ID.Hex(),
		"title":      created.Title,
	})
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing := h.loadService(w, r, ctx)
	if existing == nil {
		return
	}

	svc, errMsg := serviceFromForm(r)
	if errMsg != "" {
		svc.ID = existing.ID
		h.renderForm(w, r, formViewData{Service: svc, IsEdit: true, ErrorMsg: errMsg})
		return
	}

	if err := h.Services.Update(ctx, existing.ID, svc); err != nil {
		h.ErrLog.LogServerError(w, r, "update service", err, "تعذّر تحديث الخدمة.", "/admin/services")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "service_updated", map[string]string{
		"service_id": existing.ID.Hex(),
		"title":      svc.Title,
	})
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/services/{serviceID}/delete                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing := h.loadService(w, r, ctx)
	if existing == nil {
		return
	}

	if err := h.Services.Delete(ctx, existing.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete service", err, "تعذّر حذف الخدمة.", "/admin/services")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "service_deleted", map[string]string{
		"service_id": existing.ID.Hex(),
		"title":      existing.Title,
	})
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// serviceFromForm reads the shared create/edit form. The store
// normalizes and sanitizes on write.
func serviceFromForm(r *http.Request) (models.Service, string) {
	svc := models.Service{
		Title:       strings.TrimSpace(r.FormValue("title")),
		TitleAr:     strings.TrimSpace(r.FormValue("title_ar")),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Icon:        strings.TrimSpace(r.FormValue("icon")),
		Status:      r.FormValue("status"),
	}
	svc.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))

	if svc.Title == "" || svc.TitleAr == "" {
		return svc, "العنوان مطلوب بالعربية والإنجليزية."
	}
	if svc.Category != "service" && svc.Category != "initiative" {
		svc.Category = "service"
	}
	if svc.Status != "active" && svc.Status != "disabled" {
		svc.Status = "active"
	}
	return svc, ""
}
