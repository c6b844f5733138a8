package services

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	servicestore "github.com/mizanlegal/mizan/internal/app/store/services"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public services and initiatives pages.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Services *servicestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Services: servicestore.New(db),
	}
}

type serviceVM struct {
	ID          string
	TitleAr     string
	Title       string
	Icon        string
	Description template.HTML
}

func toVM(svc models.Service) serviceVM {
	return serviceVM{
		ID:          svc.ID.Hex(),
		TitleAr:     svc.TitleAr,
		Title:       svc.Title,
		Icon:        svc.Icon,
		Description: template.HTML(svc.Description),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /services – listing                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	services, err := h.Services.ListActive(ctx, "service")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list services", err, "تعذّر تحميل الخدمات.", "/")
		return
	}
	initiatives, err := h.Services.ListActive(ctx, "initiative")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list initiatives", err, "تعذّر تحميل الخدمات.", "/")
		return
	}

	vm := struct {
		viewdata.BaseVM
		Services    []serviceVM
		Initiatives []serviceVM
	}{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "خدماتنا", "/"),
	}
	for _, svc := range services {
		vm.Services = append(vm.Services, toVM(svc))
	}
	for _, svc := range initiatives {
		vm.Initiatives = append(vm.Initiatives, toVM(svc))
	}

	templates.Render(w, r, "services_list", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /services/{serviceID} – detail                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "serviceID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad service id", "الخدمة غير موجودة.", "/services")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "service not found", "الخدمة غير موجودة.", "/services")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load service", err, "تعذّر تحميل الخدمة.", "/services")
		return
	}
	if svc.Status != "active" {
		h.ErrLog.LogNotFound(w, r, "service inactive", "الخدمة غير موجودة.", "/services")
		return
	}

	vm := struct {
		viewdata.BaseVM
		Service serviceVM
	}{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, svc.TitleAr, "/services"),
		Service: toVM(*svc),
	}

	templates.Render(w, r, "services_detail", vm)
}
