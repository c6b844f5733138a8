// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"strings"

	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	"github.com/mizanlegal/mizan/internal/app/store/audit"
	casestore "github.com/mizanlegal/mizan/internal/app/store/cases"
	documentstore "github.com/mizanlegal/mizan/internal/app/store/documents"
	messagestore "github.com/mizanlegal/mizan/internal/app/store/messages"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/store/oauthstate"
	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a
// ping before the rest of startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes each store relies on. Every
// EnsureIndexes call is idempotent; errors are aggregated so any
// problem is visible and startup can fail fast.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("user_roles", rolestore.New(db).EnsureIndexes)
	ensure("appointments", appointmentstore.New(db, nil).EnsureIndexes)
	ensure("cases", casestore.New(db, nil).EnsureIndexes)
	ensure("case_documents", documentstore.New(db, nil).EnsureIndexes)
	ensure("messages", messagestore.New(db, nil).EnsureIndexes)
	ensure("notifications", notificationstore.New(db, nil).EnsureIndexes)
	ensure("audit_events", audit.New(db).EnsureIndexes)
	ensure("oauth_states", oauthstate.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
