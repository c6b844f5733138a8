package documentstore_test

import (
	"testing"
	"time"

	documentstore "github.com/mizanlegal/mizan/internal/app/store/documents"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/mizanlegal/mizan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdd_StoresMetadataAndNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := documentstore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	uploader := fx.CreateUser(ctx, "Lawyer", "lawyer@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	doc, err := store.Add(ctx, models.CaseDocument{
		CaseID:      c.ID,
		UploaderID:  uploader.ID,
		FileName:    "contract.pdf",
		StorageKey:  "cases/2026/08/abcd1234-contract.pdf",
		ContentType: "application/pdf",
		Size:        2048,
	}, &client.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if doc.ID.IsZero() {
		t.Error("expected generated document ID")
	}

	items, err := notif.ListRecent(ctx, client.ID)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("notifications = %d, want 1", len(items))
	}
	if items[0].Type != models.NotifDocument {
		t.Errorf("type = %q, want document", items[0].Type)
	}
	if items[0].Body != "contract.pdf" {
		t.Errorf("body = %q", items[0].Body)
	}
}

func TestAdd_NoRecipientNoNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	notif := notificationstore.New(db, nil)
	store := documentstore.New(db, notif)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")

	// Client uploading to their own case: nobody to tell.
	_, err := store.Add(ctx, models.CaseDocument{
		CaseID:     c.ID,
		UploaderID: client.ID,
		FileName:   "id-card.jpg",
		StorageKey: "cases/2026/08/efgh5678-id-card.jpg",
	}, nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err := notif.UnreadCount(ctx, client.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("notifications = %d, want 0", count)
	}
}

func TestListForCase_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := documentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fx.CreateUser(ctx, "Client", "client@example.com")
	c := fx.CreateCase(ctx, client.ID, "Case")
	other := fx.CreateCase(ctx, client.ID, "Other")

	base := time.Now().UTC().Add(-time.Hour)
	for i, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		_, err := store.Add(ctx, models.CaseDocument{
			CaseID:     c.ID,
			UploaderID: client.ID,
			FileName:   name,
			StorageKey: "cases/" + name,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}, nil)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if _, err := store.Add(ctx, models.CaseDocument{
		CaseID: other.ID, UploaderID: client.ID, FileName: "stray.pdf", StorageKey: "cases/stray.pdf",
	}, nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	docs, err := store.ListForCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListForCase failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("documents = %d, want 3", len(docs))
	}
	if docs[0].FileName != "third.pdf" {
		t.Errorf("first result = %q, want newest first", docs[0].FileName)
	}
}

func TestDelete_RemovesMetadata(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := documentstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc, err := store.Add(ctx, models.CaseDocument{
		CaseID:     primitive.NewObjectID(),
		UploaderID: primitive.NewObjectID(),
		FileName:   "temp.pdf",
		StorageKey: "cases/temp.pdf",
	}, nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, doc.ID); err == nil {
		t.Error("expected GetByID to fail after delete")
	}
}
