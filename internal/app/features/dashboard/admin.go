// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type adminViewData struct {
	viewdata.BaseVM
	UserCount      int64
	OpenCaseCount  int64
	ScheduledCount int64
	DisabledCount  int64
}

// serveAdmin shows site-wide counts and links into the admin area.
func (h *Handler) serveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	vm := adminViewData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "لوحة الإدارة", "/"),
	}

	vm.UserCount = h.count(ctx, "users", bson.M{})
	vm.DisabledCount = h.count(ctx, "users", bson.M{"status": "disabled"})
	vm.OpenCaseCount = h.count(ctx, "cases", bson.M{"status": models.CaseOpen})
	vm.ScheduledCount = h.count(ctx, "appointments", bson.M{"status": models.AppointmentScheduled})

	templates.Render(w, r, "dashboard_admin", vm)
}

func (h *Handler) count(ctx context.Context, coll string, filter bson.M) int64 {
	n, err := h.DB.Collection(coll).CountDocuments(ctx, filter)
	if err != nil {
		h.Log.Warn("dashboard count failed", zap.String("collection", coll), zap.Error(err))
		return 0
	}
	return n
}
