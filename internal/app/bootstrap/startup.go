// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/store/oauthstate"
	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/notifyhub"
	"github.com/mizanlegal/mizan/internal/app/system/workers"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Shared between Startup, BuildHandler, and Shutdown. The hub and the
// notification store are created once here so background workers and
// request handlers publish into the same live feed.
var (
	hub        *notifyhub.Hub
	notifStore *notificationstore.Store

	reminderWorker  *workers.AppointmentReminders
	oauthCleanupJob *workers.OAuthStateCleanup
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It promotes the configured admin account and starts the background
// workers (appointment reminders, OAuth state cleanup).
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if appCfg.AdminEmail != "" {
		if err := promoteAdmin(ctx, db, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	hub = notifyhub.NewHub(logger)
	notifStore = notificationstore.New(db, hub)

	reminderWorker = workers.NewAppointmentReminders(
		appointmentstore.New(db, notifStore), notifStore, logger, time.Hour)
	reminderWorker.Start()

	oauthCleanupJob = workers.NewOAuthStateCleanup(oauthstate.New(db), logger, time.Hour)
	oauthCleanupJob.Start()

	return nil
}

// promoteAdmin grants the admin role to the configured account so a
// fresh deployment always has a way into the admin area. The account
// must already exist; registration happens through the normal flow.
func promoteAdmin(ctx context.Context, db *mongo.Database, email string, logger *zap.Logger) error {
	users := userstore.New(db)
	roles := rolestore.New(db)

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.Warn("admin_email set but no matching account exists yet",
				zap.String("email", email))
			return nil
		}
		return err
	}

	role, err := roles.ActiveRole(ctx, u.ID)
	if err == nil && role == models.RoleAdmin {
		return nil
	}

	if _, err := roles.Grant(ctx, u.ID, models.RoleAdmin, nil); err != nil {
		return err
	}
	logger.Info("promoted configured account to admin",
		zap.String("email", email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
