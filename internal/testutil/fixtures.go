package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
// The user has no role assignments; callers that need a specific role
// should follow up with GrantRole.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		FullName:      name,
		FullNameCI:    text.Fold(name),
		Email:         email,
		EmailCI:       text.Fold(email),
		AuthMethod:    "password",
		Status:        "active",
		PreferredLang: "ar",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// GrantRole records a role assignment for a user at the given time.
func (f *Fixtures) GrantRole(ctx context.Context, userID primitive.ObjectID, role models.Role, grantedAt time.Time) models.RoleAssignment {
	f.t.Helper()

	ra := models.RoleAssignment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Role:      role,
		GrantedAt: grantedAt,
	}

	if _, err := f.db.Collection("role_assignments").InsertOne(ctx, ra); err != nil {
		f.t.Fatalf("failed to create role assignment: %v", err)
	}
	return ra
}

// CreateUserWithRole creates a user and grants them a role dated now.
func (f *Fixtures) CreateUserWithRole(ctx context.Context, name, email string, role models.Role) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, name, email)
	f.GrantRole(ctx, user.ID, role, time.Now().UTC())
	return user
}

// CreateNotification creates a test notification for a user.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, title string, createdAt time.Time) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      models.NotifSystem,
		Title:     title,
		CreatedAt: createdAt,
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// CreateConsultationType creates a test consultation type.
func (f *Fixtures) CreateConsultationType(ctx context.Context, name string) models.ConsultationType {
	f.t.Helper()

	now := time.Now().UTC()
	ct := models.ConsultationType{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameAr:          name,
		DurationMinutes: 30,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("consultation_types").InsertOne(ctx, ct); err != nil {
		f.t.Fatalf("failed to create test consultation type: %v", err)
	}
	return ct
}

// CreateService creates a test service entry.
func (f *Fixtures) CreateService(ctx context.Context, name string) models.Service {
	f.t.Helper()

	now := time.Now().UTC()
	svc := models.Service{
		ID:        primitive.NewObjectID(),
		Title:     name,
		TitleCI:   text.Fold(name),
		TitleAr:   name,
		Category:  "service",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("services").InsertOne(ctx, svc); err != nil {
		f.t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

// CreateAppointment creates a scheduled test appointment.
func (f *Fixtures) CreateAppointment(ctx context.Context, clientID, typeID primitive.ObjectID, date, slot string) models.Appointment {
	f.t.Helper()

	now := time.Now().UTC()
	appt := models.Appointment{
		ID:                 primitive.NewObjectID(),
		ClientID:           clientID,
		ConsultationTypeID: typeID,
		Date:               date,
		Slot:               slot,
		Status:             "scheduled",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("appointments").InsertOne(ctx, appt); err != nil {
		f.t.Fatalf("failed to create test appointment: %v", err)
	}
	return appt
}

// CreateCase creates an open test case for a client.
func (f *Fixtures) CreateCase(ctx context.Context, clientID primitive.ObjectID, title string) models.LegalCase {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.LegalCase{
		ID:         primitive.NewObjectID(),
		ClientID:   clientID,
		CaseNumber: "TC-" + primitive.NewObjectID().Hex()[:8],
		Title:      title,
		TitleCI:    text.Fold(title),
		Status:     "open",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("cases").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test case: %v", err)
	}
	return c
}
