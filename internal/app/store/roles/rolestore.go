// Package rolestore manages the role_assignments collection. A user's
// effective role is derived from their assignments, never stored on
// the user document, so the most recent grant always wins.
package rolestore

import (
	"context"
	"time"

	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("role_assignments")}
}

// ListForUser returns all role assignments for a user, most recent
// grant first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.RoleAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "granted_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var assignments []models.RoleAssignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ActiveRole resolves the user's effective role: the most recently
// granted assignment, or client when none exist.
func (s *Store) ActiveRole(ctx context.Context, userID primitive.ObjectID) (models.Role, error) {
	assignments, err := s.ListForUser(ctx, userID)
	if err != nil {
		return models.RoleClient, err
	}
	return models.ActiveRole(assignments), nil
}

// Grant records a new role assignment, making it the user's effective
// role.
func (s *Store) Grant(ctx context.Context, userID primitive.ObjectID, role models.Role, grantedBy *primitive.ObjectID) (models.RoleAssignment, error) {
	ra := models.RoleAssignment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Role:      role,
		GrantedAt: time.Now().UTC(),
		GrantedBy: grantedBy,
	}

	if _, err := s.c.InsertOne(ctx, ra); err != nil {
		return models.RoleAssignment{}, err
	}
	return ra, nil
}

// UserIDsWithRole returns the IDs of users whose effective role is
// the given role. Used by the admin area to list lawyers and staff.
func (s *Store) UserIDsWithRole(ctx context.Context, role models.Role) ([]primitive.ObjectID, error) {
	// Latest assignment per user decides, so group by user and take
	// the newest grant.
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "granted_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "role", Value: bson.D{{Key: "$first", Value: "$role"}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "role", Value: role.String()}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if cur.Decode(&row) == nil {
			ids = append(ids, row.ID)
		}
	}
	return ids, cur.Err()
}

// EnsureIndexes creates the lookup index used on every request.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "granted_at", Value: -1},
		},
	})
	return err
}
