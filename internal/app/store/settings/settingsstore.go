// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsKey is the fixed key of the single settings document.
const settingsKey = "site"

// Store provides access to the site_settings collection. There is one
// settings document for the whole site.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

// Get returns the site settings, or defaults when none have been
// saved yet.
func (s *Store) Get(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.c.FindOne(ctx, bson.M{"key": settingsKey}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.SiteSettings{
			SiteName:   models.DefaultSiteName,
			SiteNameAr: models.DefaultSiteNameAr,
		}, nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

// Save writes the site settings. Uses upsert so it works whether a
// document exists or not.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings) error {
	now := time.Now().UTC()
	settings.UpdatedAt = &now

	update := bson.M{
		"$set": bson.M{
			"key":             settingsKey,
			"site_name":       settings.SiteName,
			"site_name_ar":    settings.SiteNameAr,
			"footer_html":     settings.FooterHTML,
			"contact_email":   settings.ContactEmail,
			"contact_phone":   settings.ContactPhone,
			"address":         settings.Address,
			"logo_path":       settings.LogoPath,
			"updated_at":      settings.UpdatedAt,
			"updated_by_id":   settings.UpdatedByID,
			"updated_by_name": settings.UpdatedByName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"key": settingsKey}, update, opts)
	return err
}

// Exists checks whether settings have ever been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"key": settingsKey})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
