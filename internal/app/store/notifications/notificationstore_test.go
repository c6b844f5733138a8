package notificationstore_test

import (
	"testing"
	"time"

	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/notifyhub"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate_PublishesInserted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := notifyhub.NewHub(zap.NewNop())
	store := notificationstore.New(db, hub)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	ch, unsub := hub.Subscribe(userID.Hex())
	defer unsub()

	created, err := store.Create(ctx, models.Notification{
		UserID: userID,
		Type:   models.NotifAppointment,
		Title:  "تم تأكيد موعدك",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.IsRead {
		t.Error("new notification must start unread")
	}

	select {
	case ev := <-ch:
		if ev.Kind != notifyhub.EventInserted {
			t.Errorf("kind = %s, want inserted", ev.Kind)
		}
		if ev.Notification.ID != created.ID {
			t.Error("published notification does not match created one")
		}
	case <-time.After(time.Second):
		t.Fatal("no event published on create")
	}
}

func TestListRecent_NewestFirstCapped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db, nil)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < notificationstore.RecentLimit+5; i++ {
		fx.CreateNotification(ctx, userID, "n", base.Add(time.Duration(i)*time.Minute))
	}

	items, err := store.ListRecent(ctx, userID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != notificationstore.RecentLimit {
		t.Fatalf("items = %d, want %d", len(items), notificationstore.RecentLimit)
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatal("items not sorted newest first")
		}
	}
}

func TestMarkRead_OnlyOwnerAndPublishes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := notifyhub.NewHub(zap.NewNop())
	store := notificationstore.New(db, hub)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	n, err := store.Create(ctx, models.Notification{UserID: owner, Type: models.NotifMessage, Title: "رسالة جديدة"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A different user cannot mark it read.
	if err := store.MarkRead(ctx, n.ID, stranger); err != nil {
		t.Fatalf("MarkRead (stranger) failed: %v", err)
	}
	count, err := store.UnreadCount(ctx, owner)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("unread = %d, want 1 after foreign mark attempt", count)
	}

	ch, unsub := hub.Subscribe(owner.Hex())
	defer unsub()

	if err := store.MarkRead(ctx, n.ID, owner); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Kind != notifyhub.EventUpdated {
			t.Errorf("kind = %s, want updated", ev.Kind)
		}
		if !ev.Notification.IsRead || ev.Notification.ReadAt == nil {
			t.Error("published notification should carry read state")
		}
	case <-time.After(time.Second):
		t.Fatal("no event published on mark read")
	}

	count, err = store.UnreadCount(ctx, owner)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
}

func TestMarkRead_AlreadyReadDoesNotRepublish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := notifyhub.NewHub(zap.NewNop())
	store := notificationstore.New(db, hub)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	n, err := store.Create(ctx, models.Notification{UserID: owner, Type: models.NotifSystem, Title: "t"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.MarkRead(ctx, n.ID, owner); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	ch, unsub := hub.Subscribe(owner.Hex())
	defer unsub()

	if err := store.MarkRead(ctx, n.ID, owner); err != nil {
		t.Fatalf("second MarkRead failed: %v", err)
	}

	select {
	case <-ch:
		t.Error("no event expected for already-read notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := notifyhub.NewHub(zap.NewNop())
	store := notificationstore.New(db, hub)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.Notification{UserID: owner, Type: models.NotifCaseUpdate, Title: "تحديث"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	ch, unsub := hub.Subscribe(owner.Hex())
	defer unsub()

	if err := store.MarkAllRead(ctx, owner); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	count, err := store.UnreadCount(ctx, owner)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}

	// One updated event per flipped notification.
	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			if ev.Kind != notifyhub.EventUpdated {
				t.Errorf("kind = %s, want updated", ev.Kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("missing event %d of 3", i+1)
		}
	}
}
