package userstore_test

import (
	"context"
	"errors"
	"testing"

	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// failingRoles simulates a role_assignments lookup outage.
type failingRoles struct{}

func (failingRoles) ActiveRole(ctx context.Context, userID primitive.ObjectID) (models.Role, error) {
	return models.RoleClient, errors.New("role lookup unavailable")
}

func TestFetchSessionUser_ResolvesUserAndRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUserWithRole(ctx, "Huda", "huda@example.com", models.RoleLawyer)

	fetcher := userstore.NewFetcher(db, zap.NewNop())
	got, err := fetcher.FetchSessionUser(ctx, u.ID.Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a resolved user")
	}
	if got.Role != models.RoleLawyer {
		t.Errorf("role = %q, want lawyer", got.Role)
	}
}

func TestFetchSessionUser_RoleLookupFailureFallsBackToClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// An admin grant exists, so a silently swallowed role would be
	// visible here as elevated access.
	u := fx.CreateUserWithRole(ctx, "Huda", "huda@example.com", models.RoleAdmin)

	fetcher := userstore.NewFetcher(db, zap.NewNop())
	fetcher.UseRoleSource(failingRoles{})

	got, err := fetcher.FetchSessionUser(ctx, u.ID.Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a resolved user despite the role outage")
	}
	if got.Role != models.RoleClient {
		t.Errorf("role = %q, want client fallback", got.Role)
	}
}

func TestFetchSessionUser_UnknownIDResolvesAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fetcher := userstore.NewFetcher(db, zap.NewNop())

	got, err := fetcher.FetchSessionUser(ctx, "not-a-hex-id")
	if err != nil || got != nil {
		t.Errorf("malformed ID: got (%v, %v), want (nil, nil)", got, err)
	}

	got, err = fetcher.FetchSessionUser(ctx, primitive.NewObjectID().Hex())
	if err != nil || got != nil {
		t.Errorf("missing user: got (%v, %v), want (nil, nil)", got, err)
	}
}
