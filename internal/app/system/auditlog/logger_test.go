package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/mizanlegal/mizan/internal/app/store/audit"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, primitive.NewObjectID(), "password", "test@example.com")
	logger.Logout(ctx, req, primitive.NewObjectID().Hex())
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "off",
		Admin: "off",
		Case:  "off",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "db",
		Case:  "db",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth: "log",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no DB events when config is 'log'")
	}
}

func TestLogger_CategoryConfigsAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "off",
		Admin: "db",
		Case:  "db",
	})

	req := httptest.NewRequest("POST", "/auth", nil)
	logger.LoginSuccess(ctx, req, userID, "password", "client@example.com")
	logger.RoleGranted(ctx, req, primitive.NewObjectID(), userID, "lawyer")

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event (auth off, admin db), got %d", len(events))
	}
	if events[0].EventType != audit.EventRoleGranted {
		t.Errorf("event type = %s, want %s", events[0].EventType, audit.EventRoleGranted)
	}
}

func TestLogger_AppointmentBooked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clientID := primitive.NewObjectID()
	apptID := primitive.NewObjectID()
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Case: "db"})

	req := httptest.NewRequest("POST", "/appointments", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	logger.AppointmentBooked(ctx, req, clientID, apptID, "2026-03-03", "09:30")

	events, err := store.GetByUser(ctx, clientID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.Category != audit.CategoryCase {
		t.Errorf("category = %s, want %s", ev.Category, audit.CategoryCase)
	}
	if ev.IP != "203.0.113.9" {
		t.Errorf("ip = %s, want X-Forwarded-For value", ev.IP)
	}
	if ev.Details["date"] != "2026-03-03" || ev.Details["slot"] != "09:30" {
		t.Errorf("details = %v, want date/slot recorded", ev.Details)
	}
}

func TestStore_QueryFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for _, ev := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &userID, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLogout, UserID: &userID, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleGranted, UserID: &other, Success: true},
	} {
		if err := store.Log(ctx, ev); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	auths, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(auths) != 2 {
		t.Errorf("auth events = %d, want 2", len(auths))
	}

	count, err := store.CountByFilter(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
