package consulttypestore_test

import (
	"testing"

	consulttypestore "github.com/mizanlegal/mizan/internal/app/store/consulttypes"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consulttypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ct, err := store.Create(ctx, models.ConsultationType{
		Name:   "  Family Law  ",
		NameAr: "قانون الأسرة",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ct.Name != "Family Law" {
		t.Errorf("name = %q, want trimmed", ct.Name)
	}
	if ct.DurationMinutes != 30 {
		t.Errorf("duration = %d, want default 30", ct.DurationMinutes)
	}
	if ct.Status != "active" {
		t.Errorf("status = %q, want active", ct.Status)
	}
}

func TestListActive_ExcludesDisabledAndSorts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consulttypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.ConsultationType{Name: "Labor", NameAr: "عمل", SortOrder: 2}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	family, err := store.Create(ctx, models.ConsultationType{Name: "Family", NameAr: "أسرة", SortOrder: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	retired, err := store.Create(ctx, models.ConsultationType{Name: "Retired", NameAr: "متقاعد"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err = store.Update(ctx, retired.ID, models.ConsultationType{
		Name: retired.Name, NameAr: retired.NameAr, DurationMinutes: 30, Status: "disabled",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	types, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("got %d types, want 2", len(types))
	}
	if types[0].ID != family.ID {
		t.Errorf("first result = %q, want sort_order 1 first", types[0].Name)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll returned %d, want 3", len(all))
	}
}

func TestUpdate_ChangesFeeWaived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consulttypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ct, err := store.Create(ctx, models.ConsultationType{Name: "Housing", NameAr: "سكن"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, ct.ID, models.ConsultationType{
		Name: ct.Name, NameAr: ct.NameAr, DurationMinutes: 45, FeeWaived: true, Status: "active",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, ct.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.FeeWaived {
		t.Error("expected fee_waived=true after update")
	}
	if got.DurationMinutes != 45 {
		t.Errorf("duration = %d, want 45", got.DurationMinutes)
	}
}
