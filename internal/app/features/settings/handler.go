// internal/app/features/settings/handler.go
package settings

import (
	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	settingsstore "github.com/mizanlegal/mizan/internal/app/store/settings"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin site-settings page.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Storage  storage.Store
	Settings *settingsstore.Store
}

func NewHandler(db *mongo.Database, store storage.Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Storage:  store,
		Settings: settingsstore.New(db),
	}
}
