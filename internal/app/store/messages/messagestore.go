// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"errors"
	"strings"
	"time"

	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/htmlsanitize"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEmptyBody is returned when a message has no content after
// sanitization.
var ErrEmptyBody = errors.New("message body is empty")

// Store provides access to the messages collection. Sending a message
// puts a feed entry in the recipient's notifications when a
// notification store is attached.
type Store struct {
	c     *mongo.Collection
	notif *notificationstore.Store
}

// New creates a message store. notif may be nil in tests that don't
// care about feed entries.
func New(db *mongo.Database, notif *notificationstore.Store) *Store {
	return &Store{c: db.Collection("messages"), notif: notif}
}

// Send sanitizes and stores a message and tells the recipient.
func (s *Store) Send(ctx context.Context, m models.Message) (models.Message, error) {
	m.Body = htmlsanitize.Sanitize(m.Body)
	if strings.TrimSpace(m.Body) == "" {
		return models.Message{}, ErrEmptyBody
	}

	m.ID = primitive.NewObjectID()
	m.IsRead = false
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}

	if s.notif != nil && m.ToID != nil {
		_, _ = s.notif.Create(ctx, models.Notification{
			UserID: *m.ToID,
			Type:   models.NotifMessage,
			Title:  "رسالة جديدة",
		})
	}
	return m, nil
}

// ListForCase returns a case's message thread, oldest first.
func (s *Store) ListForCase(ctx context.Context, caseID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := s.c.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListForUser returns messages sent to or by the user, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	filter := bson.M{"$or": []bson.M{
		{"from_id": userID},
		{"to_id": userID},
	}}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListInquiries returns general inquiries, newest first. An inquiry
// is a message with no case attached; moderators work this queue.
func (s *Store) ListInquiries(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{"case_id": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead flips one message addressed to the user to read.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "to_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

// MarkInquiryRead flips a general inquiry to read. Inquiries have no
// recipient, so any moderator working the queue may mark them.
func (s *Store) MarkInquiryRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "case_id": nil, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

// UnreadCount returns the number of unread messages addressed to the
// user.
func (s *Store) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"to_id": userID, "is_read": false})
}

// MarkThreadRead marks every message in a case thread addressed to the
// user as read.
func (s *Store) MarkThreadRead(ctx context.Context, caseID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"case_id": caseID, "to_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

// EnsureIndexes creates the thread and inbox indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "case_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "to_id", Value: 1},
				{Key: "is_read", Value: 1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
