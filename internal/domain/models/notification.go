// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifAppointment = "appointment"
	NotifCaseUpdate  = "case_update"
	NotifDocument    = "document"
	NotifMessage     = "message"
	NotifReminder    = "reminder"
	NotifSystem      = "system"
)

// Notification is one entry in a user's feed. Notifications are
// created by staff actions or system triggers and are only ever
// mutated by the owning user flipping IsRead; they are never deleted.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`
	IsRead    bool               `bson:"is_read" json:"is_read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
