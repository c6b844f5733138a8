// internal/app/features/dashboard/moderator.go
package dashboard

import (
	"context"
	"net/http"

	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type moderatorViewData struct {
	viewdata.BaseVM
	OpenCases    []models.LegalCase
	Appointments []models.Appointment
}

// serveModerator shows intake work: unassigned open cases and the
// scheduled consultation queue.
func (h *Handler) serveModerator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	open, err := h.Cases.List(ctx, casestore.ListFilter{Status: models.CaseOpen})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "moderator dashboard cases", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	appts, err := h.Appointments.ListScheduled(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "moderator dashboard appointments", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	templates.Render(w, r, "dashboard_moderator", moderatorViewData{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "لوحة الإشراف", "/"),
		OpenCases:    open,
		Appointments: appts,
	})
}
