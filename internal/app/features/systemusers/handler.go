// internal/app/features/systemusers/handler.go
package systemusers

import (
	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	rolestore "github.com/mizanlegal/mizan/internal/app/store/roles"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin user directory: listing accounts, granting
// roles, and enabling or disabling sign-in.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Users    *userstore.Store
	Roles    *rolestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Users:    userstore.New(db),
		Roles:    rolestore.New(db),
	}
}
