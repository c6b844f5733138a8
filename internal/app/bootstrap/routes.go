// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	aboutfeature "github.com/mizanlegal/mizan/internal/app/features/about"
	appointmentsfeature "github.com/mizanlegal/mizan/internal/app/features/appointments"
	auditlogfeature "github.com/mizanlegal/mizan/internal/app/features/auditlog"
	authgooglefeature "github.com/mizanlegal/mizan/internal/app/features/authgoogle"
	casesfeature "github.com/mizanlegal/mizan/internal/app/features/cases"
	consulttypesadminfeature "github.com/mizanlegal/mizan/internal/app/features/consulttypesadmin"
	dashboardfeature "github.com/mizanlegal/mizan/internal/app/features/dashboard"
	errorsfeature "github.com/mizanlegal/mizan/internal/app/features/errors"
	healthfeature "github.com/mizanlegal/mizan/internal/app/features/health"
	homefeature "github.com/mizanlegal/mizan/internal/app/features/home"
	loginfeature "github.com/mizanlegal/mizan/internal/app/features/login"
	logoutfeature "github.com/mizanlegal/mizan/internal/app/features/logout"
	messagesfeature "github.com/mizanlegal/mizan/internal/app/features/messages"
	notificationsfeature "github.com/mizanlegal/mizan/internal/app/features/notifications"
	profilefeature "github.com/mizanlegal/mizan/internal/app/features/profile"
	servicesfeature "github.com/mizanlegal/mizan/internal/app/features/services"
	servicesadminfeature "github.com/mizanlegal/mizan/internal/app/features/servicesadmin"
	settingsfeature "github.com/mizanlegal/mizan/internal/app/features/settings"
	systemusersfeature "github.com/mizanlegal/mizan/internal/app/features/systemusers"
	"github.com/mizanlegal/mizan/internal/app/store/audit"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/notifyhub"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	wafflestorage "github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The portal splits into three surfaces mounted here: the public site
// (home, about, services, auth), the signed-in client portal
// (dashboard, appointments, cases, messages, notifications, profile),
// and the admin area under /admin, which is gated as a whole by
// RequireRole(admin).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser resolves fresh user data
	// on each request. Role changes and disabled accounts take effect
	// immediately instead of waiting for the session to expire.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Storage backend for case documents and the site logo.
	store, err := buildStorage(appCfg, logger)
	if err != nil {
		return nil, err
	}
	viewdata.Init(store)

	// Live notification hub and store, created in Startup so the
	// background workers publish into the same feed the SSE endpoint
	// streams out.
	if hub == nil {
		hub = notifyhub.NewHub(logger)
	}
	if notifStore == nil {
		notifStore = notificationstore.New(db, hub)
	}
	viewdata.SetUnreadCounter(func(ctx context.Context, userID string) int {
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return 0
		}
		n, err := notifStore.UnreadCount(ctx, oid)
		if err != nil {
			return 0
		}
		return int(n)
	})

	// Audit trail: auth, admin, and case events per configured modes.
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
		Case:  appCfg.AuditLogCase,
	})

	// Error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""

	r := chi.NewRouter()

	// CSRF protection for all form posts. The SSE stream and JSON GETs
	// are safe methods and pass through untouched.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Local storage serves uploaded branding assets directly. Case
	// documents never go through this route; downloads are
	// access-checked in the cases feature.
	if _, ok := store.(*wafflestorage.Local); ok {
		r.Handle(appCfg.StorageLocalURL+"/*",
			http.StripPrefix(appCfg.StorageLocalURL, http.FileServer(http.Dir(appCfg.StorageLocalPath))))
	}

	// Public pages
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(db, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	servicesHandler := servicesfeature.NewHandler(db, errLog, logger)
	r.Mount("/services", servicesfeature.Routes(servicesHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, auditLog, googleEnabled, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	if googleEnabled {
		googleHandler := authgooglefeature.NewHandler(db, sessionMgr, errLog, auditLog,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsfeature.Routes(r)

	// Signed-in portal
	dashboardHandler := dashboardfeature.NewHandler(db, notifStore, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	notificationsHandler := notificationsfeature.NewHandler(db, notifStore, hub, errLog, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))

	appointmentsHandler := appointmentsfeature.NewHandler(db, notifStore, errLog, auditLog, logger)
	r.Mount("/appointments", appointmentsfeature.Routes(appointmentsHandler, sessionMgr))

	casesHandler := casesfeature.NewHandler(db, notifStore, store, errLog, auditLog, logger)
	r.Mount("/cases", casesfeature.Routes(casesHandler, sessionMgr))

	messagesHandler := messagesfeature.NewHandler(db, notifStore, errLog, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler, sessionMgr))

	profileHandler := profilefeature.NewHandler(db, errLog, auditLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Admin area. The audit browser brings its own gate so moderators
	// can read the trail; everything else is admin-only.
	r.Route("/admin", func(ar chi.Router) {
		auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
		ar.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

		ar.Group(func(g chi.Router) {
			g.Use(sessionMgr.RequireRole(models.RoleAdmin))

			usersHandler := systemusersfeature.NewHandler(db, errLog, auditLog, logger)
			g.Mount("/users", systemusersfeature.Routes(usersHandler))

			svcAdminHandler := servicesadminfeature.NewHandler(db, errLog, auditLog, logger)
			g.Mount("/services", servicesadminfeature.Routes(svcAdminHandler))

			typesHandler := consulttypesadminfeature.NewHandler(db, errLog, auditLog, logger)
			g.Mount("/consultation-types", consulttypesadminfeature.Routes(typesHandler))

			settingsHandler := settingsfeature.NewHandler(db, store, errLog, auditLog, logger)
			g.Mount("/settings", settingsfeature.Routes(settingsHandler))
		})
	})

	return r, nil
}
