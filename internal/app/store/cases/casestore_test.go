package casestore_test

import (
	"fmt"
	"testing"
	"time"

	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_SequentialCaseNumbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := casestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Rana", "rana@example.com")

	year := time.Now().UTC().Year()
	for i := 1; i <= 3; i++ {
		c, err := store.Create(ctx, models.LegalCase{
			ClientID: client.ID,
			Title:    fmt.Sprintf("Case %d", i),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		want := fmt.Sprintf("MZ-%d-%04d", year, i)
		if c.CaseNumber != want {
			t.Errorf("case number = %q, want %q", c.CaseNumber, want)
		}
		if c.Status != models.CaseOpen {
			t.Errorf("status = %q, want open", c.Status)
		}
	}
}

func TestCreate_NotifiesClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := casestore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	c, err := store.Create(ctx, models.LegalCase{ClientID: client.ID, Title: "نزاع عمالي"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	items, err := notif.ListRecent(ctx, client.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("notifications = %d, want 1", len(items))
	}
	if items[0].Type != models.NotifCaseUpdate {
		t.Errorf("type = %q, want case_update", items[0].Type)
	}
	if items[0].Body != "رقم القضية: "+c.CaseNumber {
		t.Errorf("body = %q", items[0].Body)
	}
}

func TestSetStatus_ValidatesAndNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := casestore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	c, err := store.Create(ctx, models.LegalCase{ClientID: client.ID, Title: "Case"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, c.ID, "bogus"); err != casestore.ErrBadStatus {
		t.Errorf("err = %v, want ErrBadStatus", err)
	}
	if err := store.SetStatus(ctx, c.ID, models.CaseActive); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.CaseActive {
		t.Errorf("status = %q, want active", got.Status)
	}

	count, err := notif.UnreadCount(ctx, client.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	// Open + status change.
	if count != 2 {
		t.Errorf("unread notifications = %d, want 2", count)
	}
}

func TestAssignLawyer_NotifiesBothSides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := casestore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUserWithRole(ctx, "Lawyer", "lawyer@example.com", models.RoleLawyer)

	c, err := store.Create(ctx, models.LegalCase{ClientID: client.ID, Title: "Case"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.AssignLawyer(ctx, c.ID, lawyer.ID); err != nil {
		t.Fatalf("AssignLawyer failed: %v", err)
	}

	mine, err := store.ListForLawyer(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("ListForLawyer failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != c.ID {
		t.Fatalf("lawyer listing = %d entries", len(mine))
	}

	lawyerCount, err := notif.UnreadCount(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if lawyerCount != 1 {
		t.Errorf("lawyer notifications = %d, want 1", lawyerCount)
	}
}

func TestCanAccess(t *testing.T) {
	client := primitive.NewObjectID()
	lawyer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	c := &models.LegalCase{ClientID: client, LawyerID: &lawyer}

	if !casestore.CanAccess(c, client) {
		t.Error("owning client should have access")
	}
	if !casestore.CanAccess(c, lawyer) {
		t.Error("assigned lawyer should have access")
	}
	if casestore.CanAccess(c, stranger) {
		t.Error("stranger should not have access")
	}

	unassigned := &models.LegalCase{ClientID: client}
	if casestore.CanAccess(unassigned, lawyer) {
		t.Error("lawyer without assignment should not have access")
	}
}

func TestList_FilterByStatusAndSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := casestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")

	open, err := store.Create(ctx, models.LegalCase{ClientID: client.ID, Title: "Tenancy Dispute"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	closed, err := store.Create(ctx, models.LegalCase{ClientID: client.ID, Title: "Wage Claim"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.SetStatus(ctx, closed.ID, models.CaseClosed); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.List(ctx, casestore.ListFilter{Status: "open"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Errorf("status filter returned %d entries", len(got))
	}

	got, err = store.List(ctx, casestore.ListFilter{Search: "TENANCY"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Errorf("search returned %d entries", len(got))
	}

	got, err = store.List(ctx, casestore.ListFilter{Search: open.CaseNumber})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Errorf("case number search returned %d entries", len(got))
	}
}
