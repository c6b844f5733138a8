package appointmentstore_test

import (
	"testing"
	"time"

	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/booking"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nextBookableDate returns the first date the wizard would offer.
func nextBookableDate(t *testing.T) string {
	t.Helper()
	dates := booking.AvailableDates(time.Now())
	if len(dates) == 0 {
		t.Fatal("no bookable dates")
	}
	return dates[0]
}

func TestBook_CreatesScheduledAppointment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := appointmentstore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Rana", "rana@example.com")
	ct := fx.CreateConsultationType(ctx, "Family")
	date := nextBookableDate(t)

	appt, err := store.Book(ctx, client.ID, ct.ID, date, "10:00", "ملاحظات")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", appt.Status)
	}
	if appt.Date != date || appt.Slot != "10:00" {
		t.Errorf("stored %s %s", appt.Date, appt.Slot)
	}

	count, err := notif.UnreadCount(ctx, client.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("unread notifications = %d, want booking confirmation", count)
	}
}

func TestBook_RejectsInvalidDateAndSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := appointmentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clientID := primitive.NewObjectID()
	typeID := primitive.NewObjectID()

	// Today is never bookable: availability starts tomorrow.
	today := time.Now().Format(booking.DateFormat)
	if _, err := store.Book(ctx, clientID, typeID, today, "10:00", ""); err != appointmentstore.ErrBadDate {
		t.Errorf("today: err = %v, want ErrBadDate", err)
	}

	date := nextBookableDate(t)
	if _, err := store.Book(ctx, clientID, typeID, date, "10:15", ""); err != appointmentstore.ErrBadSlot {
		t.Errorf("off-grid slot: err = %v, want ErrBadSlot", err)
	}
	if _, err := store.Book(ctx, clientID, typeID, date, "17:00", ""); err != appointmentstore.ErrBadSlot {
		t.Errorf("after hours: err = %v, want ErrBadSlot", err)
	}
}

func TestBook_RejectsDoubleBooking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := appointmentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The conflict check is the partial unique index, not a read
	// before the insert, so the index has to exist.
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first := fx.CreateUser(ctx, "First", "first@example.com")
	second := fx.CreateUser(ctx, "Second", "second@example.com")
	ct := fx.CreateConsultationType(ctx, "Labor")
	date := nextBookableDate(t)

	if _, err := store.Book(ctx, first.ID, ct.ID, date, "09:30", ""); err != nil {
		t.Fatalf("first Book failed: %v", err)
	}
	if _, err := store.Book(ctx, second.ID, ct.ID, date, "09:30", ""); err != appointmentstore.ErrSlotTaken {
		t.Errorf("err = %v, want ErrSlotTaken", err)
	}

	// A cancelled appointment frees the slot.
	appts, err := store.ListForClient(ctx, first.ID)
	if err != nil {
		t.Fatalf("ListForClient failed: %v", err)
	}
	if err := store.Cancel(ctx, appts[0].ID, first.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if _, err := store.Book(ctx, second.ID, ct.ID, date, "09:30", ""); err != nil {
		t.Errorf("rebooking freed slot failed: %v", err)
	}
}

func TestCancel_OnlyOwnerAndOnlyScheduled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := appointmentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Owner", "owner@example.com")
	other := fx.CreateUser(ctx, "Other", "other@example.com")
	ct := fx.CreateConsultationType(ctx, "Housing")
	date := nextBookableDate(t)

	appt, err := store.Book(ctx, client.ID, ct.ID, date, "11:00", "")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}

	if err := store.Cancel(ctx, appt.ID, other.ID); err != appointmentstore.ErrNotCancellable {
		t.Errorf("foreign cancel: err = %v, want ErrNotCancellable", err)
	}
	if err := store.Cancel(ctx, appt.ID, client.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := store.Cancel(ctx, appt.ID, client.ID); err != appointmentstore.ErrNotCancellable {
		t.Errorf("second cancel: err = %v, want ErrNotCancellable", err)
	}

	got, err := store.GetByID(ctx, appt.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
}

func TestAssignLawyer_SetsLawyerAndNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := appointmentstore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	ct := fx.CreateConsultationType(ctx, "Family")
	date := nextBookableDate(t)

	appt, err := store.Book(ctx, client.ID, ct.ID, date, "13:30", "")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if err := store.AssignLawyer(ctx, appt.ID, lawyer.ID); err != nil {
		t.Fatalf("AssignLawyer failed: %v", err)
	}

	assigned, err := store.ListForLawyer(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("ListForLawyer failed: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != appt.ID {
		t.Fatalf("lawyer listing = %d entries", len(assigned))
	}

	// Booking + assignment notifications.
	count, err := notif.UnreadCount(ctx, client.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("unread notifications = %d, want 2", count)
	}
}

func TestBookedSlots_MarksScheduledOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := appointmentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	ct := fx.CreateConsultationType(ctx, "Family")
	date := nextBookableDate(t)

	booked, err := store.Book(ctx, client.ID, ct.ID, date, "09:00", "")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	cancelled, err := store.Book(ctx, client.ID, ct.ID, date, "14:00", "")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if err := store.Cancel(ctx, cancelled.ID, client.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	slots, err := store.BookedSlots(ctx, date)
	if err != nil {
		t.Fatalf("BookedSlots failed: %v", err)
	}
	if !slots[booked.Slot] {
		t.Error("expected scheduled slot to be marked booked")
	}
	if slots[cancelled.Slot] {
		t.Error("cancelled slot should not be marked booked")
	}
}
