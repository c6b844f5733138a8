// internal/app/features/auditlog/handler.go
package auditlog

import (
	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	"github.com/mizanlegal/mizan/internal/app/store/audit"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin audit trail browser.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *audit.Store
	Users  *userstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit.New(db),
		Users:  userstore.New(db),
	}
}
