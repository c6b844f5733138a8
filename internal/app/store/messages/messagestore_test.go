package messagestore_test

import (
	"strings"
	"testing"

	messagestore "github.com/mizanlegal/mizan/internal/app/store/messages"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
)

func TestSend_SanitizesBodyAndNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := messagestore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	m, err := store.Send(ctx, models.Message{
		CaseID: &c.ID,
		FromID: client.ID,
		ToID:   &lawyer.ID,
		Body:   `مرحباً<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if strings.Contains(m.Body, "script") {
		t.Errorf("body = %q, want script stripped", m.Body)
	}
	if !strings.Contains(m.Body, "مرحباً") {
		t.Errorf("body = %q, want text kept", m.Body)
	}

	items, err := notif.ListRecent(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 1 || items[0].Type != models.NotifMessage {
		t.Fatalf("recipient notifications = %d", len(items))
	}
}

func TestSend_RejectsEmptyBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := messagestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")

	if _, err := store.Send(ctx, models.Message{FromID: client.ID, Body: "   "}); err != messagestore.ErrEmptyBody {
		t.Errorf("blank: err = %v, want ErrEmptyBody", err)
	}
	// A body that is nothing but stripped markup is empty too.
	if _, err := store.Send(ctx, models.Message{FromID: client.ID, Body: "<script>x()</script>"}); err != messagestore.ErrEmptyBody {
		t.Errorf("script only: err = %v, want ErrEmptyBody", err)
	}
}

func TestListForCase_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := messagestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	for _, body := range []string{"الأولى", "الثانية", "الثالثة"} {
		if _, err := store.Send(ctx, models.Message{
			CaseID: &c.ID, FromID: client.ID, ToID: &lawyer.ID, Body: body,
		}); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}

	msgs, err := store.ListForCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListForCase failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[0].Body != "الأولى" {
		t.Errorf("first = %q, want oldest first", msgs[0].Body)
	}
}

func TestListInquiries_OnlyCaselessMessages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := messagestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	if _, err := store.Send(ctx, models.Message{FromID: client.ID, Body: "استفسار عام"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := store.Send(ctx, models.Message{CaseID: &c.ID, FromID: client.ID, ToID: &lawyer.ID, Body: "رسالة قضية"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	inquiries, err := store.ListInquiries(ctx)
	if err != nil {
		t.Fatalf("ListInquiries failed: %v", err)
	}
	if len(inquiries) != 1 {
		t.Fatalf("inquiries = %d, want 1", len(inquiries))
	}
	if inquiries[0].Body != "استفسار عام" {
		t.Errorf("inquiry body = %q", inquiries[0].Body)
	}
}

func TestMarkRead_OnlyRecipient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := messagestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")

	m, err := store.Send(ctx, models.Message{FromID: client.ID, ToID: &lawyer.ID, Body: "سؤال"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	// The sender cannot mark the recipient's copy read.
	if err := store.MarkRead(ctx, m.ID, client.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if n, _ := store.UnreadCount(ctx, lawyer.ID); n != 1 {
		t.Errorf("unread after sender attempt = %d, want 1", n)
	}

	if err := store.MarkRead(ctx, m.ID, lawyer.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if n, _ := store.UnreadCount(ctx, lawyer.ID); n != 0 {
		t.Errorf("unread after recipient read = %d, want 0", n)
	}
}

func TestMarkThreadRead_OnlyRecipientSide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := messagestore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	lawyer := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	if _, err := store.Send(ctx, models.Message{CaseID: &c.ID, FromID: client.ID, ToID: &lawyer.ID, Body: "سؤال"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := store.Send(ctx, models.Message{CaseID: &c.ID, FromID: lawyer.ID, ToID: &client.ID, Body: "جواب"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if err := store.MarkThreadRead(ctx, c.ID, lawyer.ID); err != nil {
		t.Fatalf("MarkThreadRead failed: %v", err)
	}

	lawyerUnread, err := store.UnreadCount(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if lawyerUnread != 0 {
		t.Errorf("lawyer unread = %d, want 0", lawyerUnread)
	}

	clientUnread, err := store.UnreadCount(ctx, client.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if clientUnread != 1 {
		t.Errorf("client unread = %d, want untouched 1", clientUnread)
	}
}
