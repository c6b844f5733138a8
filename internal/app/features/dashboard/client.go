// internal/app/features/dashboard/client.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type clientViewData struct {
	viewdata.BaseVM
	Appointments []models.Appointment
	Cases        []models.LegalCase
}

// serveClient shows the client's upcoming appointments and cases.
func (h *Handler) serveClient(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	appts, err := h.Appointments.ListForClient(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "client dashboard appointments", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	// Only show active bookings on the dashboard.
	scheduled := appts[:0]
	for _, a := range appts {
		if a.Status == models.AppointmentScheduled {
			scheduled = append(scheduled, a)
		}
	}

	cases, err := h.Cases.ListForClient(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "client dashboard cases", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	templates.Render(w, r, "dashboard_client", clientViewData{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "لوحتي", "/"),
		Appointments: scheduled,
		Cases:        cases,
	})
}
