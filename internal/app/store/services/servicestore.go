// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/htmlsanitize"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/status"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the services collection: the legal-aid
// services and initiatives shown on the public site.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// GetByID loads a service by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListActive returns active services of the given category in display
// order. Category may be empty to list everything active.
func (s *Store) ListActive(ctx context.Context, category string) ([]models.Service, error) {
	query := bson.M{"status": status.Active}
	if category != "" {
		query["category"] = category
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "title_ci", Value: 1},
	})

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ListAll returns every service, for the admin list.
func (s *Store) ListAll(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "title_ci", Value: 1},
	})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Create inserts a service after normalizing and sanitizing fields.
func (s *Store) Create(ctx context.Context, svc models.Service) (models.Service, error) {
	svc.ID = primitive.NewObjectID()
	svc.Title = normalize.Name(svc.Title)
	svc.TitleCI = text.Fold(svc.Title)
	svc.TitleAr = normalize.Name(svc.TitleAr)
	svc.Description = htmlsanitize.Sanitize(svc.Description)
	if svc.Category == "" {
		svc.Category = "service"
	}
	if svc.Status == "" {
		svc.Status = status.Active
	}

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Update replaces a service's editable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, svc models.Service) error {
	set := bson.M{
		"title":       normalize.Name(svc.Title),
		"title_ci":    text.Fold(svc.Title),
		"title_ar":    normalize.Name(svc.TitleAr),
		"description": htmlsanitize.Sanitize(svc.Description),
		"category":    svc.Category,
		"icon":        svc.Icon,
		"sort_order":  svc.SortOrder,
		"status":      normalize.Status(svc.Status),
		"updated_at":  time.Now(),
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a service.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
