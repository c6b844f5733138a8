// internal/app/features/cases/actions.go
package cases

import (
	"context"
	"errors"
	"net/http"
	"strings"

	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	messagestore "github.com/mizanlegal/mizan/internal/app/store/messages"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /cases/new – staff open a case for a client                             |
*─────────────────────────────────────────────────────────────────────────────*/

type newCaseViewData struct {
	viewdata.BaseVM
	CaseTitle   string
	Summary     string
	ClientEmail string
	ErrorMsg    string
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderNewCase(w, r, newCaseViewData{})
}

func (h *Handler) renderNewCase(w http.ResponseWriter, r *http.Request, vm newCaseViewData) {
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, "فتح قضية", "/cases")
	templates.Render(w, r, "cases_new", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /cases                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse case form", err, "تعذّر قراءة النموذج.", "/cases/new")
		return
	}

	vm := newCaseViewData{
		CaseTitle:   strings.TrimSpace(r.FormValue("title")),
		Summary:     strings.TrimSpace(r.FormValue("summary")),
		ClientEmail: normalize.Email(r.FormValue("client_email")),
	}

	if vm.CaseTitle == "" {
		vm.ErrorMsg = "عنوان القضية مطلوب."
		h.renderNewCase(w, r, vm)
		return
	}
	if vm.ClientEmail == "" {
		vm.ErrorMsg = "البريد الإلكتروني للموكّل مطلوب."
		h.renderNewCase(w, r, vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	client, err := h.Users.GetByEmail(ctx, vm.ClientEmail)
	if errors.Is(err, mongo.ErrNoDocuments) {
		vm.ErrorMsg = "لا يوجد مستخدم بهذا البريد الإلكتروني."
		h.renderNewCase(w, r, vm)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "look up case client", err, "تعذّر فتح القضية.", "/cases/new")
		return
	}

	created, err := h.Cases.Create(ctx, models.LegalCase{
		ClientID: client.ID,
		Title:    vm.CaseTitle,
		Summary:  vm.Summary,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create case", err, "تعذّر فتح القضية.", "/cases/new")
		return
	}

	h.AuditLog.CaseCreated(ctx, r, actorID, created.ID, client.ID, created.CaseNumber)
	http.Redirect(w, r, "/cases/"+created.ID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /cases/{caseID}/status                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	newStatus := strings.TrimSpace(r.FormValue("status"))
	err := h.Cases.SetStatus(ctx, c.ID, newStatus)
	switch {
	case errors.Is(err, casestore.ErrBadStatus):
		h.ErrLog.LogBadRequest(w, r, "bad case status", err, "الحالة المختارة غير صالحة.", "/cases/"+c.ID.Hex())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "set case status", err, "تعذّر تحديث الحالة.", "/cases/"+c.ID.Hex())
		return
	}

	h.AuditLog.CaseStatusChanged(ctx, r, actorID, c.ID, c.Status, newStatus)
	http.Redirect(w, r, "/cases/"+c.ID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /cases/{caseID}/assign                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	lawyerID, err := primitive.ObjectIDFromHex(r.FormValue("lawyer_id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad lawyer id", err, "يرجى اختيار محامٍ.", "/cases/"+c.ID.Hex())
		return
	}

	if err := h.Cases.AssignLawyer(ctx, c.ID, lawyerID); err != nil {
		h.ErrLog.LogServerError(w, r, "assign case lawyer", err, "تعذّر إسناد القضية.", "/cases/"+c.ID.Hex())
		return
	}

	h.AuditLog.CaseAssigned(ctx, r, actorID, c.ID, lawyerID)
	http.Redirect(w, r, "/cases/"+c.ID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /cases/{caseID}/messages                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSendMessage posts into the case thread. Client messages go to
// the assigned lawyer when there is one; staff messages go to the
// client.
func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	role, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	var toID *primitive.ObjectID
	if role == models.RoleClient {
		toID = c.LawyerID
	} else {
		clientID := c.ClientID
		toID = &clientID
	}

	caseID := c.ID
	_, err := h.Messages.Send(ctx, models.Message{
		CaseID: &caseID,
		FromID: userID,
		ToID:   toID,
		Body:   r.FormValue("body"),
	})
	switch {
	case errors.Is(err, messagestore.ErrEmptyBody):
		h.ErrLog.LogBadRequest(w, r, "empty case message", err, "لا يمكن إرسال رسالة فارغة.", "/cases/"+c.ID.Hex())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "send case message", err, "تعذّر إرسال الرسالة.", "/cases/"+c.ID.Hex())
		return
	}

	http.Redirect(w, r, "/cases/"+c.ID.Hex(), http.StatusSeeOther)
}
