// internal/app/store/consulttypes/consulttypestore.go
package consulttypestore

import (
	"context"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/status"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the consultation_types collection: the
// kinds of consultation offered in the booking wizard.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("consultation_types")}
}

// GetByID loads a consultation type by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ConsultationType, error) {
	var ct models.ConsultationType
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListActive returns bookable consultation types in display order.
func (s *Store) ListActive(ctx context.Context) ([]models.ConsultationType, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var types []models.ConsultationType
	if err := cur.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ListAll returns every consultation type, for the admin list.
func (s *Store) ListAll(ctx context.Context) ([]models.ConsultationType, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var types []models.ConsultationType
	if err := cur.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Create inserts a consultation type.
func (s *Store) Create(ctx context.Context, ct models.ConsultationType) (models.ConsultationType, error) {
	ct.ID = primitive.NewObjectID()
	ct.Name = normalize.Name(ct.Name)
	ct.NameAr = normalize.Name(ct.NameAr)
	if ct.DurationMinutes <= 0 {
		ct.DurationMinutes = 30
	}
	if ct.Status == "" {
		ct.Status = status.Active
	}

	now := time.Now()
	ct.CreatedAt = now
	ct.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ct); err != nil {
		return models.ConsultationType{}, err
	}
	return ct, nil
}

// Update replaces a consultation type's editable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, ct models.ConsultationType) error {
	set := bson.M{
		"name":             normalize.Name(ct.Name),
		"name_ar":          normalize.Name(ct.NameAr),
		"description":      ct.Description,
		"duration_minutes": ct.DurationMinutes,
		"fee_waived":       ct.FeeWaived,
		"sort_order":       ct.SortOrder,
		"status":           normalize.Status(ct.Status),
		"updated_at":       time.Now(),
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a consultation type.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
