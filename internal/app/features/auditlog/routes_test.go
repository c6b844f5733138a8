package auditlog_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	auditlogfeature "github.com/mizanlegal/mizan/internal/app/features/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-0123456789ABCDEF", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return auditlogfeature.Routes(&auditlogfeature.Handler{}, sm)
}

func withRole(r *http.Request, role models.Role) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:   "64b000000000000000000001",
		Name: "مختبر",
		Role: role,
	})
}

func TestRoutes_ClientIsRefused(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	req = withRole(req, models.RoleClient)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRoutes_AnonymousRedirectsToSignIn(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/auth?redirect=") {
		t.Errorf("Location = %q, want sign-in redirect", loc)
	}
}

func TestRoutes_ModeratorPassesTheGate(t *testing.T) {
	router := newRouter(t)

	// An unrouted path: the gate runs, then the mux 404s. A refused
	// role would see 403 here instead.
	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("Accept", "application/json")
	req = withRole(req, models.RoleModerator)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d (past the role gate)", rec.Code, http.StatusNotFound)
	}
}

func TestRoutes_AdminPassesTheGate(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("Accept", "application/json")
	req = withRole(req, models.RoleAdmin)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d (past the role gate)", rec.Code, http.StatusNotFound)
	}
}
