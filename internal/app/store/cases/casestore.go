// internal/app/store/cases/casestore.go
package casestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadStatus is returned when a status transition names an unknown
// case status.
var ErrBadStatus = errors.New("invalid case status")

// Store provides access to the cases collection. Status changes and
// lawyer assignment push a notification to the client's feed when a
// notification store is attached.
type Store struct {
	c        *mongo.Collection
	counters *mongo.Collection
	notif    *notificationstore.Store
}

// New creates a case store. notif may be nil in tests that don't care
// about feed entries.
func New(db *mongo.Database, notif *notificationstore.Store) *Store {
	return &Store{
		c:        db.Collection("cases"),
		counters: db.Collection("counters"),
		notif:    notif,
	}
}

// nextCaseNumber allocates a sequential case number of the form
// MZ-2026-0001. The sequence restarts each year.
func (s *Store) nextCaseNumber(ctx context.Context) (string, error) {
	year := time.Now().UTC().Year()
	key := fmt.Sprintf("case_number_%d", year)

	res := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return "", err
	}
	return fmt.Sprintf("MZ-%d-%04d", year, counter.Seq), nil
}

// Create opens a new case for a client and tells them the case number.
func (s *Store) Create(ctx context.Context, c models.LegalCase) (models.LegalCase, error) {
	number, err := s.nextCaseNumber(ctx)
	if err != nil {
		return models.LegalCase{}, err
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CaseNumber = number
	c.Title = normalize.Name(c.Title)
	c.TitleCI = text.Fold(c.Title)
	if c.Status == "" {
		c.Status = models.CaseOpen
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.LegalCase{}, err
	}

	s.notify(ctx, c.ClientID,
		"تم فتح ملف قضيتك",
		"رقم القضية: "+c.CaseNumber)
	return c, nil
}

// GetByID loads a case by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LegalCase, error) {
	var c models.LegalCase
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CanAccess reports whether the user may open the case: the owning
// client or the assigned lawyer. Admin and moderator access is decided
// at the route, not here.
func CanAccess(c *models.LegalCase, userID primitive.ObjectID) bool {
	if c.ClientID == userID {
		return true
	}
	return c.LawyerID != nil && *c.LawyerID == userID
}

// SetStatus moves a case to a new status and tells the client.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, newStatus string) error {
	if !validStatus(newStatus) {
		return ErrBadStatus
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": newStatus, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var c models.LegalCase
	if err := res.Decode(&c); err != nil {
		return err
	}

	s.notify(ctx, c.ClientID,
		"تحديث حالة القضية "+c.CaseNumber,
		"الحالة الجديدة: "+statusLabelAr(newStatus))
	return nil
}

// AssignLawyer sets the lawyer handling a case and tells both sides.
func (s *Store) AssignLawyer(ctx context.Context, id, lawyerID primitive.ObjectID) error {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lawyer_id": lawyerID, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var c models.LegalCase
	if err := res.Decode(&c); err != nil {
		return err
	}

	s.notify(ctx, c.ClientID,
		"تم تعيين محامٍ لقضيتك "+c.CaseNumber, "")
	s.notify(ctx, lawyerID,
		"تم إسناد القضية "+c.CaseNumber+" إليك", "")
	return nil
}

// ListForClient returns a client's cases, newest first.
func (s *Store) ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]models.LegalCase, error) {
	return s.list(ctx, bson.M{"client_id": clientID})
}

// ListForLawyer returns the cases assigned to a lawyer.
func (s *Store) ListForLawyer(ctx context.Context, lawyerID primitive.ObjectID) ([]models.LegalCase, error) {
	return s.list(ctx, bson.M{"lawyer_id": lawyerID})
}

// ListFilter narrows the staff case listing.
type ListFilter struct {
	Status string
	Search string
}

// List returns cases for the staff views, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]models.LegalCase, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = normalize.Status(filter.Status)
	}
	if filter.Search != "" {
		folded := text.Fold(filter.Search)
		query["$or"] = []bson.M{
			{"title_ci": bson.M{"$regex": folded}},
			{"case_number": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}
	return s.list(ctx, query)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.LegalCase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cases []models.LegalCase
	if err := cur.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *Store) notify(ctx context.Context, userID primitive.ObjectID, title, body string) {
	if s.notif == nil {
		return
	}
	_, _ = s.notif.Create(ctx, models.Notification{
		UserID: userID,
		Type:   models.NotifCaseUpdate,
		Title:  title,
		Body:   body,
	})
}

func validStatus(status string) bool {
	switch status {
	case models.CaseOpen, models.CaseInReview, models.CaseActive, models.CaseClosed:
		return true
	}
	return false
}

func statusLabelAr(status string) string {
	switch status {
	case models.CaseOpen:
		return "مفتوحة"
	case models.CaseInReview:
		return "قيد المراجعة"
	case models.CaseActive:
		return "نشطة"
	case models.CaseClosed:
		return "مغلقة"
	}
	return status
}

// EnsureIndexes creates the case lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "case_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "client_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "lawyer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
