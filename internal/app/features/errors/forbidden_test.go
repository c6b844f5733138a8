package errors

import (
	"net/http/httptest"
	"testing"

	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
)

func TestForbiddenData_NamesRequiredAndHeldRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/forbidden?required=admin", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   "64b000000000000000000001",
		Name: "سلمى",
		Role: models.RoleClient,
	})

	data := forbiddenData(req)

	if data.RequiredRole != "admin" {
		t.Errorf("RequiredRole = %q, want admin", data.RequiredRole)
	}
	if data.HeldRole != "client" {
		t.Errorf("HeldRole = %q, want client", data.HeldRole)
	}
	if data.BackURL != "/dashboard" {
		t.Errorf("BackURL = %q, want /dashboard for a signed-in user", data.BackURL)
	}
}

func TestForbiddenData_AnonymousHidesHeldRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/forbidden?required=admin", nil)

	data := forbiddenData(req)

	if data.HeldRole != "" {
		t.Errorf("HeldRole = %q, want empty for a visitor", data.HeldRole)
	}
	if data.BackURL != "/" {
		t.Errorf("BackURL = %q, want / for a visitor", data.BackURL)
	}
}
