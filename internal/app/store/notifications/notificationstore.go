// Package notificationstore manages the notifications collection and
// feeds the live notification hub. Every write publishes an event so
// open portal pages update their bell without a reload.
package notificationstore

import (
	"context"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/notifyhub"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecentLimit caps the notification list shown in the portal.
const RecentLimit = 50

type Store struct {
	c   *mongo.Collection
	hub *notifyhub.Hub
}

// New creates a notification store. hub may be nil in tests that
// don't care about live delivery.
func New(db *mongo.Database, hub *notifyhub.Hub) *Store {
	return &Store{c: db.Collection("notifications"), hub: hub}
}

func (s *Store) publish(n models.Notification, kind notifyhub.EventKind) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(n.UserID.Hex(), notifyhub.Event{Kind: kind, Notification: n})
}

// Create inserts a notification and announces it to live subscribers.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	n.IsRead = false
	n.ReadAt = nil
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}

	s.publish(n, notifyhub.EventInserted)
	return n, nil
}

// ListRecent returns the user's most recent notifications, newest
// first, capped at RecentLimit.
func (s *Store) ListRecent(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(RecentLimit)

	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Notification
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UnreadCount returns the number of unread notifications for the
// badge.
func (s *Store) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
}

// MarkRead marks one notification read. The userID filter keeps a
// user from flipping someone else's notification. Already-read
// notifications are left untouched.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	now := time.Now().UTC()

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var n models.Notification
	if err := res.Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			// Unknown, foreign, or already read: nothing to announce.
			return nil
		}
		return err
	}

	s.publish(n, notifyhub.EventUpdated)
	return nil
}

// MarkAllRead marks every unread notification for the user read and
// announces each flip so open feeds converge.
func (s *Store) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID, "is_read": false}

	// Collect the affected documents first so each can be published
	// with its final state.
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return err
	}
	var pending []models.Notification
	if err := cur.All(ctx, &pending); err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if _, err := s.c.UpdateMany(ctx, filter, bson.M{"$set": bson.M{
		"is_read": true,
		"read_at": now,
	}}); err != nil {
		return err
	}

	for _, n := range pending {
		n.IsRead = true
		n.ReadAt = &now
		s.publish(n, notifyhub.EventUpdated)
	}
	return nil
}

// EnsureIndexes creates the per-user feed index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_read", Value: 1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
