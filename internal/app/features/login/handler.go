// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/authutil"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	AuditLog      *auditlog.Logger
	Users         *userstore.Store
	GoogleEnabled bool
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		AuditLog:      audit,
		Users:         userstore.New(db),
		GoogleEnabled: googleEnabled,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	RedirectURL   string
	GoogleEnabled bool
}

type registerFormData struct {
	viewdata.BaseVM
	Error         string
	FullName      string
	Email         string
	Phone         string
	RedirectURL   string
	PasswordRules string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in: skip the form.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "auth_login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "تسجيل الدخول", "/"),
		RedirectURL:   query.Get(r, "redirect"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /auth                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "بيانات النموذج غير صالحة.", "/auth")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	redirect := strings.TrimSpace(r.FormValue("redirect"))

	if email == "" || password == "" {
		h.renderLoginError(w, r, "يرجى إدخال البريد الإلكتروني وكلمة المرور.", email, redirect)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case err == mongo.ErrNoDocuments:
		h.AuditLog.LoginFailedUserNotFound(ctx, r, email)
		h.renderLoginError(w, r, "لا يوجد حساب بهذا البريد الإلكتروني.", email, redirect)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "login user lookup", err, "حدث خطأ في الخادم.", "/auth")
		return
	}

	if normalize.Status(u.Status) == "disabled" {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, email)
		h.renderLoginError(w, r, "حسابك معطّل حالياً. يرجى التواصل مع الإدارة.", email, redirect)
		return
	}

	if normalize.AuthMethod(u.AuthMethod) == "google" {
		h.renderLoginError(w, r, "هذا الحساب مسجّل عبر Google. استخدم زر الدخول عبر Google.", email, redirect)
		return
	}

	if u.PasswordHash == nil || !authutil.CheckPassword(password, *u.PasswordHash) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, email)
		h.renderLoginError(w, r, "كلمة المرور غير صحيحة.", email, redirect)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "save session", err, "تعذّر إنشاء الجلسة. حاول مجدداً.", "/auth")
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, u.ID, "password", email)

	dest := urlutil.SafeReturn(redirect, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, msg, email, redirect string) {
	templates.Render(w, r, "auth_login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "تسجيل الدخول", "/"),
		Error:         msg,
		Email:         email,
		RedirectURL:   redirect,
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/register                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "auth_register", registerFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "إنشاء حساب", "/auth"),
		RedirectURL:   query.Get(r, "redirect"),
		PasswordRules: authutil.PasswordRules(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /auth/register                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse register form failed", err, "بيانات النموذج غير صالحة.", "/auth/register")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := normalize.Email(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	redirect := strings.TrimSpace(r.FormValue("redirect"))

	renderErr := func(msg string) {
		templates.Render(w, r, "auth_register", registerFormData{
			BaseVM:        viewdata.NewBaseVM(r, h.DB, "إنشاء حساب", "/auth"),
			Error:         msg,
			FullName:      fullName,
			Email:         email,
			Phone:         phone,
			RedirectURL:   redirect,
			PasswordRules: authutil.PasswordRules(),
		})
	}

	if fullName == "" {
		renderErr("يرجى إدخال الاسم الكامل.")
		return
	}
	if err := authutil.ValidateEmail(email); err != nil {
		renderErr("البريد الإلكتروني غير صالح.")
		return
	}
	if err := authutil.ValidatePhone(phone); err != nil {
		renderErr("رقم الهاتف غير صالح.")
		return
	}
	if password != confirm {
		renderErr("كلمتا المرور غير متطابقتين.")
		return
	}
	if err := authutil.ValidatePassword(password); err != nil {
		renderErr(authutil.PasswordRules())
		return
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password", err, "حدث خطأ في الخادم.", "/auth/register")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		AuthMethod:   "password",
		PasswordHash: &hash,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		renderErr("يوجد حساب مسجّل بهذا البريد الإلكتروني. جرّب تسجيل الدخول.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user", err, "تعذّر إنشاء الحساب. حاول مجدداً.", "/auth/register")
		return
	}

	h.AuditLog.Registered(ctx, r, u.ID, "password", email)

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		// Account exists; let them sign in manually.
		h.Log.Error("session save after register failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	dest := urlutil.SafeReturn(redirect, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
