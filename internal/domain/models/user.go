// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the portal: clients, lawyers,
// moderators, and administrators.
//
// NOTE:
//   - The user's role is not embedded on User. Roles are granted via
//     the role_assignments collection; the most recent grant wins.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"email_ci"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// AuthMethod is "password" or "google".
	AuthMethod   string  `bson:"auth_method,omitempty" json:"auth_method,omitempty"`
	PasswordHash *string `bson:"password_hash,omitempty" json:"-"`

	Status        string `bson:"status,omitempty" json:"status,omitempty"` // active | disabled
	PreferredLang string `bson:"preferred_lang,omitempty" json:"preferred_lang,omitempty"` // ar | en

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
