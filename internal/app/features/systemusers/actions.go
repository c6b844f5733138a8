// internal/app/features/systemusers/actions.go
package systemusers

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/users/{userID}/role                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleGrantRole records a new role assignment. The most recent
// grant becomes the user's active role.
func (h *Handler) HandleGrantRole(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	targetID, ok := parseUserID(chi.URLParam(r, "userID"))
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad user id", "المستخدم غير موجود.", "/admin/users")
		return
	}

	role := models.ParseRole(r.FormValue("role"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Roles.Grant(ctx, targetID, role, &actorID); err != nil {
		h.ErrLog.LogServerError(w, r, "grant role", err, "تعذّر منح الدور.", "/admin/users")
		return
	}

	h.AuditLog.RoleGranted(ctx, r, actorID, targetID, string(role))
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/users/{userID}/status                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSetStatus enables or disables an account. Admins cannot
// disable themselves; that would lock the last door.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	targetID, ok := parseUserID(chi.URLParam(r, "userID"))
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad user id", "المستخدم غير موجود.", "/admin/users")
		return
	}

	status := r.FormValue("status")
	if status != "active" && status != "disabled" {
		h.ErrLog.LogBadRequest(w, r, "bad user status", nil, "الحالة المطلوبة غير صالحة.", "/admin/users")
		return
	}

	if targetID == actorID && status == "disabled" {
		h.ErrLog.LogBadRequest(w, r, "self disable refused", nil, "لا يمكنك تعطيل حسابك.", "/admin/users")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetStatus(ctx, targetID, status); err != nil {
		h.ErrLog.LogServerError(w, r, "set user status", err, "تعذّر تحديث الحساب.", "/admin/users")
		return
	}

	if status == "disabled" {
		h.AuditLog.UserDisabled(ctx, r, actorID, targetID)
	} else {
		h.AuditLog.UserEnabled(ctx, r, actorID, targetID)
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
