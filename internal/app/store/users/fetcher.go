package userstore

import (
	"context"

	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/status"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// RoleSource resolves a user's active role. Satisfied by the role
// store; tests substitute a failing one.
type RoleSource interface {
	ActiveRole(ctx context.Context, userID primitive.ObjectID) (models.Role, error)
}

// Fetcher implements auth.UserFetcher to load fresh user data on each
// request. The role comes from the role_assignments collection, not
// the session, so a grant or revocation takes effect on the user's
// next request without re-login.
type Fetcher struct {
	users *mongo.Collection
	roles RoleSource
	log   *zap.Logger
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		users: db.Collection("users"),
		roles: rolestore.New(db),
		log:   logger,
	}
}

// UseRoleSource swaps the role lookup. Test helper only.
func (f *Fetcher) UseRoleSource(rs RoleSource) {
	f.roles = rs
}

// FetchSessionUser retrieves a user by ID. It returns (nil, nil) when
// the session should be treated as unauthenticated: unknown ID,
// missing user, or disabled account. A database failure on the user
// lookup returns the error so callers can distinguish "signed out"
// from "can't tell right now". A failure on the role lookup alone
// falls back to the client role; the portal stays usable and the user
// simply loses any elevated access until the next request.
func (f *Fetcher) FetchSessionUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":            1,
		"full_name":      1,
		"email":          1,
		"status":         1,
		"preferred_lang": 1,
	})

	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	if normalize.Status(u.Status) == status.Disabled {
		return nil, nil
	}

	role := models.RoleClient
	if r, err := f.roles.ActiveRole(ctx, oid); err != nil {
		if f.log != nil {
			f.log.Warn("role lookup failed, falling back to client",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	} else {
		role = r
	}

	return &auth.SessionUser{
		ID:            u.ID.Hex(),
		Name:          u.FullName,
		Email:         u.Email,
		Role:          role,
		PreferredLang: normalize.Lang(u.PreferredLang),
	}, nil
}
