package home

import (
	"context"
	"html/template"
	"net/http"

	servicestore "github.com/mizanlegal/mizan/internal/app/store/services"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Services *servicestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Services: servicestore.New(db),
	}
}

// ServiceVM is a landing-page card. Description HTML was sanitized on
// the way into the database.
type ServiceVM struct {
	ID          string
	TitleAr     string
	Icon        string
	Description template.HTML
}

func toServiceVMs(services []models.Service) []ServiceVM {
	vms := make([]ServiceVM, 0, len(services))
	for _, svc := range services {
		vms = append(vms, ServiceVM{
			ID:          svc.ID.Hex(),
			TitleAr:     svc.TitleAr,
			Icon:        svc.Icon,
			Description: template.HTML(svc.Description),
		})
	}
	return vms
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	services, err := h.Services.ListActive(ctx, "service")
	if err != nil {
		h.Log.Error("load services for landing failed", zap.Error(err))
	}

	initiatives, err := h.Services.ListActive(ctx, "initiative")
	if err != nil {
		h.Log.Error("load initiatives for landing failed", zap.Error(err))
	}

	data := struct {
		viewdata.BaseVM
		Services    []ServiceVM
		Initiatives []ServiceVM
	}{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "الرئيسية", "/"),
		Services:    toServiceVMs(services),
		Initiatives: toServiceVMs(initiatives),
	}

	templates.Render(w, r, "home", data)
}
