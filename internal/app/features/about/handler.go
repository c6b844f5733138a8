package about

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the about page with the organization's contact
// details from site settings.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	settings := viewdata.GetSettings(ctx, h.DB)

	data := struct {
		viewdata.BaseVM
		ContactEmail string
		ContactPhone string
		Address      string
	}{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "من نحن", "/"),
		ContactEmail: settings.ContactEmail,
		ContactPhone: settings.ContactPhone,
		Address:      settings.Address,
	}

	templates.Render(w, r, "about", data)
}
