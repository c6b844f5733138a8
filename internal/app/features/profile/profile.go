// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/authutil"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type profileData struct {
	viewdata.BaseVM

	FullName      string
	Email         string
	Phone         string
	PreferredLang string
	AuthMethod    string

	// Password section only applies to password accounts; Google
	// accounts change credentials at Google.
	ShowPasswordSection bool
	PasswordRules       string

	ErrorMsg   string
	SuccessMsg string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, "", successMessage(r))
}

func successMessage(r *http.Request) string {
	switch r.URL.Query().Get("success") {
	case "profile":
		return "تم حفظ البيانات."
	case "password":
		return "تم تغيير كلمة المرور."
	}
	return ""
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, errorMsg, successMsg string) {
	_, _, uid, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile user", err, "تعذّر تحميل الملف الشخصي.", "/dashboard")
		return
	}

	lang := user.PreferredLang
	if lang == "" {
		lang = "ar"
	}

	data := profileData{
		BaseVM:              viewdata.NewBaseVM(r, h.DB, "الملف الشخصي", "/dashboard"),
		FullName:            user.FullName,
		Email:               user.Email,
		Phone:               user.Phone,
		PreferredLang:       lang,
		AuthMethod:          user.AuthMethod,
		ShowPasswordSection: user.AuthMethod == "password",
		PasswordRules:       authutil.PasswordRules(),
		ErrorMsg:            errorMsg,
		SuccessMsg:          successMsg,
	}

	templates.Render(w, r, "profile", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile – name, phone, language                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form", err, "تعذّر قراءة النموذج.", "/profile")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	lang := r.FormValue("preferred_lang")

	if fullName == "" {
		h.renderProfile(w, r, "الاسم الكامل مطلوب.", "")
		return
	}
	if phone != "" {
		if err := authutil.ValidatePhone(phone); err != nil {
			h.renderProfile(w, r, "رقم الهاتف غير صالح.", "")
			return
		}
	}
	if lang != "ar" && lang != "en" {
		lang = "ar"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, uid, userstore.ProfileUpdate{
		FullName:      fullName,
		Phone:         phone,
		PreferredLang: lang,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update profile", err, "تعذّر حفظ البيانات.", "/profile")
		return
	}

	http.Redirect(w, r, "/profile?success=profile", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile/password                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	_, _, uid, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse password form", err, "تعذّر قراءة النموذج.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile user", err, "تعذّر تحميل الملف الشخصي.", "/dashboard")
		return
	}

	if user.AuthMethod != "password" {
		h.renderProfile(w, r, "تغيير كلمة المرور متاح فقط لحسابات كلمة المرور.", "")
		return
	}

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirmPassword := r.FormValue("confirm_password")

	if user.PasswordHash == nil || !authutil.CheckPassword(currentPassword, *user.PasswordHash) {
		h.renderProfile(w, r, "كلمة المرور الحالية غير صحيحة.", "")
		return
	}
	if err := authutil.ValidatePassword(newPassword); err != nil {
		h.renderProfile(w, r, "كلمة المرور الجديدة لا تستوفي الشروط.", "")
		return
	}
	if newPassword != confirmPassword {
		h.renderProfile(w, r, "كلمتا المرور غير متطابقتين.", "")
		return
	}
	if authutil.CheckPassword(newPassword, *user.PasswordHash) {
		h.renderProfile(w, r, "لا يمكن إعادة استخدام كلمة المرور الحالية.", "")
		return
	}

	hash, err := authutil.HashPassword(newPassword)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password", err, "تعذّر تغيير كلمة المرور.", "/profile")
		return
	}
	if err := h.Users.SetPasswordHash(ctx, uid, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "set password hash", err, "تعذّر تغيير كلمة المرور.", "/profile")
		return
	}

	h.AuditLog.PasswordChanged(ctx, r, uid)
	http.Redirect(w, r, "/profile?success=password", http.StatusSeeOther)
}
