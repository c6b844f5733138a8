// internal/app/features/cases/detail.go
package cases

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type messageVM struct {
	models.Message
	SenderName string
	Mine       bool
}

type detailViewData struct {
	viewdata.BaseVM
	Case        models.LegalCase
	ClientName  string
	LawyerName  string
	StatusLabel string
	Documents   []models.CaseDocument
	Thread      []messageVM
	Lawyers     []models.User
	CanManage   bool
	CanAssign   bool
	StatusOpts  []statusOpt
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /cases/{caseID}                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	role, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	docs, err := h.Documents.ListForCase(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list case documents", err, "تعذّر تحميل المستندات.", "/cases")
		return
	}

	thread, err := h.Messages.ListForCase(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list case messages", err, "تعذّر تحميل الرسائل.", "/cases")
		return
	}

	// Opening the thread counts as reading it.
	if err := h.Messages.MarkThreadRead(ctx, c.ID, userID); err != nil {
		h.Log.Warn("mark thread read failed", zap.String("case_id", c.ID.Hex()), zap.Error(err))
	}

	vm := detailViewData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, c.CaseNumber, "/cases"),
		Case:        *c,
		StatusLabel: statusLabel(c.Status),
		Documents:   docs,
		CanManage:   role != models.RoleClient,
		CanAssign:   role == models.RoleAdmin || role == models.RoleModerator,
		StatusOpts:  statusOptions(),
	}

	vm.ClientName, vm.LawyerName = h.partyNames(ctx, c)
	vm.Thread = h.buildThread(ctx, thread, userID)

	if vm.CanAssign {
		vm.Lawyers = h.lawyerOptions(ctx)
	}

	templates.Render(w, r, "cases_detail", vm)
}

func statusLabel(status string) string {
	for _, opt := range statusOptions() {
		if opt.Value == status {
			return opt.Label
		}
	}
	return status
}

// partyNames resolves the client and lawyer display names. A lookup
// failure degrades to an empty name.
func (h *Handler) partyNames(ctx context.Context, c *models.LegalCase) (client, lawyer string) {
	if u, err := h.Users.GetByID(ctx, c.ClientID); err == nil {
		client = u.FullName
	}
	if c.LawyerID != nil {
		if u, err := h.Users.GetByID(ctx, *c.LawyerID); err == nil {
			lawyer = u.FullName
		}
	}
	return client, lawyer
}

// buildThread decorates messages with sender names and ownership so
// the template can align the conversation.
func (h *Handler) buildThread(ctx context.Context, msgs []models.Message, viewerID primitive.ObjectID) []messageVM {
	ids := make([]primitive.ObjectID, 0, len(msgs))
	seen := make(map[primitive.ObjectID]bool)
	for _, m := range msgs {
		if !seen[m.FromID] {
			seen[m.FromID] = true
			ids = append(ids, m.FromID)
		}
	}

	names := make(map[primitive.ObjectID]string)
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("load message senders failed", zap.Error(err))
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	out := make([]messageVM, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageVM{
			Message:    m,
			SenderName: names[m.FromID],
			Mine:       m.FromID == viewerID,
		})
	}
	return out
}

// lawyerOptions loads the users holding the lawyer role for the
// assignment select. Failures degrade to an empty list.
func (h *Handler) lawyerOptions(ctx context.Context) []models.User {
	ids, err := h.Roles.UserIDsWithRole(ctx, models.RoleLawyer)
	if err != nil {
		h.Log.Warn("list lawyer ids failed", zap.Error(err))
		return nil
	}
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("load lawyers failed", zap.Error(err))
		return nil
	}
	return users
}
