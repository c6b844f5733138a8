// internal/domain/models/roleassignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAssignment is one role grant for a user. Assignments are
// append-only history: the row with the greatest GrantedAt is the
// user's active role. A user with no rows is a client.
type RoleAssignment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Role      Role                `bson:"role" json:"role"`
	GrantedAt time.Time           `bson:"granted_at" json:"granted_at"`
	GrantedBy *primitive.ObjectID `bson:"granted_by,omitempty" json:"granted_by,omitempty"`
}

// ActiveRole resolves the authoritative role from a set of
// assignments: the one with the maximum GrantedAt, regardless of the
// order the rows arrive in. An empty set resolves to RoleClient.
func ActiveRole(assignments []RoleAssignment) Role {
	if len(assignments) == 0 {
		return RoleClient
	}
	best := assignments[0]
	for _, a := range assignments[1:] {
		if a.GrantedAt.After(best.GrantedAt) {
			best = a
		}
	}
	if !best.Role.IsValid() {
		return RoleClient
	}
	return best.Role
}
