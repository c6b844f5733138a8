// internal/app/features/dashboard/lawyer.go
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

type lawyerViewData struct {
	viewdata.BaseVM
	Cases        []models.LegalCase
	Appointments []models.Appointment
}

// serveLawyer shows the lawyer's assigned cases and consultations.
func (h *Handler) serveLawyer(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cases, err := h.Cases.ListForLawyer(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lawyer dashboard cases", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	appts, err := h.Appointments.ListForLawyer(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lawyer dashboard appointments", err, "تعذّر تحميل لوحتك.", "/")
		return
	}

	templates.Render(w, r, "dashboard_lawyer", lawyerViewData{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "لوحة المحامي", "/"),
		Cases:        cases,
		Appointments: appts,
	})
}
