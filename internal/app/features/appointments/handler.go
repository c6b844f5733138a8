// internal/app/features/appointments/handler.go
package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	consulttypestore "github.com/mizanlegal/mizan/internal/app/store/consulttypes"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/booking"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the consultation booking flow: listing the client's
// appointments, the booking form with live slot availability, and
// booking/cancel actions.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
	AuditLog     *auditlog.Logger
	Appointments *appointmentstore.Store
	Types        *consulttypestore.Store
}

func NewHandler(db *mongo.Database, notif *notificationstore.Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		ErrLog:       errLog,
		AuditLog:     audit,
		Appointments: appointmentstore.New(db, notif),
		Types:        consulttypestore.New(db),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type listViewData struct {
	viewdata.BaseVM
	Upcoming []models.Appointment
	Past     []models.Appointment
	TypeName map[string]string
}

type newViewData struct {
	viewdata.BaseVM
	Types    []models.ConsultationType
	Dates    []string
	Slots    []string
	Date     string
	Booked   map[string]bool
	ErrorMsg string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /appointments – my consultations                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	appts, err := h.Appointments.ListForClient(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list appointments", err, "تعذّر تحميل الاستشارات.", "/dashboard")
		return
	}

	vm := listViewData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "استشاراتي", "/dashboard"),
		TypeName: h.typeNames(ctx),
	}
	for _, a := range appts {
		if a.Status == models.AppointmentScheduled {
			vm.Upcoming = append(vm.Upcoming, a)
		} else {
			vm.Past = append(vm.Past, a)
		}
	}

	templates.Render(w, r, "appointments_list", vm)
}

// typeNames maps consultation type IDs to their Arabic names for
// display. A failed load degrades to IDs, not an error page.
func (h *Handler) typeNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	types, err := h.Types.ListAll(ctx)
	if err != nil {
		h.Log.Warn("load consultation types failed", zap.Error(err))
		return names
	}
	for _, t := range types {
		names[t.ID.Hex()] = t.NameAr
	}
	return names
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /appointments/new – booking form                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderNew(w, r, "", "")
}

func (h *Handler) renderNew(w http.ResponseWriter, r *http.Request, date, errorMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	types, err := h.Types.ListActive(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list consultation types", err, "تعذّر تحميل أنواع الاستشارات.", "/appointments")
		return
	}

	dates := booking.AvailableDates(time.Now())
	if date == "" && len(dates) > 0 {
		date = dates[0]
	}

	booked, err := h.Appointments.BookedSlots(ctx, date)
	if err != nil {
		h.Log.Warn("load booked slots failed", zap.String("date", date), zap.Error(err))
		booked = map[string]bool{}
	}

	vm := newViewData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "حجز استشارة", "/appointments"),
		Types:    types,
		Dates:    dates,
		Slots:    booking.TimeSlots(),
		Date:     date,
		Booked:   booked,
		ErrorMsg: errorMsg,
	}

	templates.Render(w, r, "appointments_new", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /appointments/slots – slot availability for a date (JSON)               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeSlots returns the slot grid for one date so the booking form
// can refresh availability when the user picks a different day.
func (h *Handler) ServeSlots(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if !booking.ValidDate(time.Now(), date) {
		http.Error(w, "bad date", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	booked, err := h.Appointments.BookedSlots(ctx, date)
	if err != nil {
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}

	type slotVM struct {
		Slot   string `json:"slot"`
		Booked bool   `json:"booked"`
	}
	out := make([]slotVM, 0, len(booking.TimeSlots()))
	for _, s := range booking.TimeSlots() {
		out = append(out, slotVM{Slot: s, Booked: booked[s]})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"date": date, "slots": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /appointments – book                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse booking form", err, "تعذّر قراءة النموذج.", "/appointments/new")
		return
	}

	date := strings.TrimSpace(r.FormValue("date"))
	slot := strings.TrimSpace(r.FormValue("slot"))
	notes := strings.TrimSpace(r.FormValue("notes"))

	typeID, err := primitive.ObjectIDFromHex(r.FormValue("consultation_type_id"))
	if err != nil {
		h.renderNew(w, r, date, "يرجى اختيار نوع الاستشارة.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ct, err := h.Types.GetByID(ctx, typeID)
	if err != nil || ct.Status != "active" {
		h.renderNew(w, r, date, "نوع الاستشارة غير متاح.")
		return
	}

	appt, err := h.Appointments.Book(ctx, userID, typeID, date, slot, notes)
	switch {
	case errors.Is(err, appointmentstore.ErrBadDate):
		h.renderNew(w, r, date, "التاريخ المختار غير متاح للحجز.")
		return
	case errors.Is(err, appointmentstore.ErrBadSlot):
		h.renderNew(w, r, date, "الوقت المختار غير صالح.")
		return
	case errors.Is(err, appointmentstore.ErrSlotTaken):
		h.renderNew(w, r, date, "هذا الموعد محجوز بالفعل، يرجى اختيار وقت آخر.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "book appointment", err, "تعذّر إتمام الحجز.", "/appointments/new")
		return
	}

	h.AuditLog.AppointmentBooked(ctx, r, userID, appt.ID, appt.Date, appt.Slot)
	http.Redirect(w, r, "/appointments", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /appointments/{appointmentID}/cancel                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "appointmentID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad appointment id", err, "الاستشارة غير موجودة.", "/appointments")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Appointments.Cancel(ctx, id, userID)
	switch {
	case errors.Is(err, appointmentstore.ErrNotCancellable):
		h.ErrLog.LogBadRequest(w, r, "appointment not cancellable", err, "لا يمكن إلغاء هذه الاستشارة.", "/appointments")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "cancel appointment", err, "تعذّر إلغاء الاستشارة.", "/appointments")
		return
	}

	h.AuditLog.AppointmentCancelled(ctx, r, userID, id)
	http.Redirect(w, r, "/appointments", http.StatusSeeOther)
}
