// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"time"

	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the case_documents collection. The file
// bytes themselves live in blob storage; this store holds metadata and
// the storage key.
type Store struct {
	c     *mongo.Collection
	notif *notificationstore.Store
}

// New creates a document store. notif may be nil in tests that don't
// care about feed entries.
func New(db *mongo.Database, notif *notificationstore.Store) *Store {
	return &Store{c: db.Collection("case_documents"), notif: notif}
}

// Add records an uploaded document. When notifyUserID is set, the
// other party on the case gets a feed entry.
func (s *Store) Add(ctx context.Context, doc models.CaseDocument, notifyUserID *primitive.ObjectID) (models.CaseDocument, error) {
	doc.ID = primitive.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.CaseDocument{}, err
	}

	if s.notif != nil && notifyUserID != nil {
		_, _ = s.notif.Create(ctx, models.Notification{
			UserID: *notifyUserID,
			Type:   models.NotifDocument,
			Title:  "مستند جديد في قضيتك",
			Body:   doc.FileName,
		})
	}
	return doc, nil
}

// GetByID loads a document's metadata.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CaseDocument, error) {
	var doc models.CaseDocument
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListForCase returns a case's documents, newest first.
func (s *Store) ListForCase(ctx context.Context, caseID primitive.ObjectID) ([]models.CaseDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.CaseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document's metadata. The caller is responsible for
// removing the blob.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes creates the per-case listing index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "case_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
