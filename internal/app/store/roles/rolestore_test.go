package rolestore_test

import (
	"testing"
	"time"

	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestActiveRole_NoAssignments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	role, err := store.ActiveRole(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ActiveRole failed: %v", err)
	}
	if role != models.RoleClient {
		t.Errorf("role = %s, want client", role)
	}
}

func TestActiveRole_LatestGrantWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Rania Haddad", "rania@example.com")
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	fx.GrantRole(ctx, user.ID, models.RoleAdmin, base.Add(24*time.Hour))
	fx.GrantRole(ctx, user.ID, models.RoleLawyer, base)
	fx.GrantRole(ctx, user.ID, models.RoleModerator, base.Add(48*time.Hour))

	role, err := store.ActiveRole(ctx, user.ID)
	if err != nil {
		t.Fatalf("ActiveRole failed: %v", err)
	}
	if role != models.RoleModerator {
		t.Errorf("role = %s, want moderator (most recent grant)", role)
	}
}

func TestGrant_BecomesActiveRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUserWithRole(ctx, "Omar Khalil", "omar@example.com", models.RoleClient)
	admin := fx.CreateUserWithRole(ctx, "Admin", "admin@example.com", models.RoleAdmin)

	if _, err := store.Grant(ctx, user.ID, models.RoleLawyer, &admin.ID); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	role, err := store.ActiveRole(ctx, user.ID)
	if err != nil {
		t.Fatalf("ActiveRole failed: %v", err)
	}
	if role != models.RoleLawyer {
		t.Errorf("role = %s, want lawyer after grant", role)
	}

	assignments, err := store.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(assignments))
	}
	if assignments[0].Role != models.RoleLawyer {
		t.Error("expected newest assignment first")
	}
	if assignments[0].GrantedBy == nil || *assignments[0].GrantedBy != admin.ID {
		t.Error("expected granted_by to record the admin")
	}
}

func TestUserIDsWithRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lawyer1 := fx.CreateUserWithRole(ctx, "Lawyer One", "l1@example.com", models.RoleLawyer)
	lawyer2 := fx.CreateUserWithRole(ctx, "Lawyer Two", "l2@example.com", models.RoleLawyer)
	fx.CreateUserWithRole(ctx, "Admin", "a@example.com", models.RoleAdmin)

	// A former lawyer later granted moderator must not appear.
	former := fx.CreateUser(ctx, "Former Lawyer", "former@example.com")
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	fx.GrantRole(ctx, former.ID, models.RoleLawyer, base)
	fx.GrantRole(ctx, former.ID, models.RoleModerator, base.Add(time.Hour))

	ids, err := store.UserIDsWithRole(ctx, models.RoleLawyer)
	if err != nil {
		t.Fatalf("UserIDsWithRole failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %d, want 2", len(ids))
	}

	found := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[lawyer1.ID] || !found[lawyer2.ID] {
		t.Error("expected both current lawyers in result")
	}
	if found[former.ID] {
		t.Error("former lawyer should not appear")
	}
}
