// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role, name, Mongo ObjectID, and a found
// flag. If no user is present in context or the user ID is malformed,
// it returns RoleClient, "", NilObjectID, false, so ok=true means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role models.Role, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.RoleClient, "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return models.RoleClient, "", primitive.NilObjectID, false
	}
	return user.Role, user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsLawyer reports whether the current request's user is a lawyer.
func IsLawyer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleLawyer
}

// IsModerator reports whether the current request's user is a moderator.
func IsModerator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleModerator
}

// IsClient reports whether the current request's user is a client.
func IsClient(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleClient
}

// IsStaff reports whether the user holds any staff role.
// Lawyers, moderators, and admins are staff; clients are not.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role != models.RoleClient
}

// HasAnyRole reports whether the user holds any of the given roles.
// Admin passes every check (universal override). Returns false if no
// user is present.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	cur, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	if cur == models.RoleAdmin {
		return true
	}
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}

// Role returns the current user's role and whether a user is present.
func Role(r *http.Request) (models.Role, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
