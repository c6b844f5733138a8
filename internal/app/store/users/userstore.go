package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/status"
	"github.com/mizanlegal/mizan/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
	errBadAuthMethod  = errors.New(`auth_method must be "password"|"google"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs loads all users whose IDs are in the given set, sorted by
// name. Missing IDs are skipped, not errors.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// Role assignments are written separately; a user without any is a
// client.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)
	u.PreferredLang = normalize.Lang(u.PreferredLang)
	if u.Status == "" {
		u.Status = status.Active
	}
	if u.PreferredLang == "" {
		u.PreferredLang = "ar"
	}

	switch u.AuthMethod {
	case "password", "google":
		// ok
	default:
		return models.User{}, errBadAuthMethod
	}

	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the fields a user can change about themselves.
type ProfileUpdate struct {
	FullName      string
	Phone         string
	PreferredLang string
}

// UpdateProfile updates a user's own profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{
		"full_name":      normalize.Name(upd.FullName),
		"full_name_ci":   text.Fold(upd.FullName),
		"phone":          normalize.Name(upd.Phone),
		"preferred_lang": normalize.Lang(upd.PreferredLang),
		"updated_at":     time.Now(),
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetPasswordHash replaces a user's password hash.
func (s *Store) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}})
	return err
}

// SetStatus enables or disables an account.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st string) error {
	if !status.IsValid(st) {
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     st,
		"updated_at": time.Now(),
	}})
	return err
}

// EmailExistsForOther checks if an email already exists for a user other than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil // found another user with this email
	}
	if err == mongo.ErrNoDocuments {
		return false, nil // no duplicate
	}
	return false, err // actual error
}

// ListFilter narrows the admin user list.
type ListFilter struct {
	Search string // matched against folded name and email
	Status string
	Limit  int64
	Offset int64
}

// List returns users matching the filter, newest first, plus the
// total match count for pagination.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]models.User, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = normalize.Status(filter.Status)
	}
	if q := text.Fold(normalize.QueryParam(filter.Search)); q != "" {
		query["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": q}},
			bson.M{"email_ci": bson.M{"$regex": q}},
		}
	}

	total, err := s.c.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// EnsureIndexes creates the account lookup indexes. The unique email
// index backs ErrDuplicateEmail on registration.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "full_name_ci", Value: 1}},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
