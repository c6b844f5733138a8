// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one entry in a conversation between a client and staff.
// Body HTML is sanitized before storage. Messages without a CaseID
// are general inquiries handled by moderators.
type Message struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CaseID *primitive.ObjectID `bson:"case_id,omitempty" json:"case_id,omitempty"`
	FromID primitive.ObjectID  `bson:"from_id" json:"from_id"`
	ToID   *primitive.ObjectID `bson:"to_id,omitempty" json:"to_id,omitempty"`

	Body   string `bson:"body" json:"body"`
	IsRead bool   `bson:"is_read" json:"is_read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
