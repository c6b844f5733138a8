// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/mizanlegal/mizan/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout,
	// registration, password changes).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for admin actions (role grants,
	// service/consultation-type CRUD, settings changes).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
	// Case controls logging for client activity (bookings, case
	// changes, document uploads).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Case string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	case audit.CategoryCase:
		setting = l.config.Case
	default:
		setting = "all" // Default to logging everything for unknown categories
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

/*───────────────────────────────*| auth events |*───────────────────────────*/

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, authMethod, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"auth_method": authMethod,
			"email":       email,
		},
	})
}

// LoginFailedUserNotFound logs a failed login due to user not found.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "user not found",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		UserID:        &userID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "wrong password",
		Details: map[string]string{
			"email": email,
		},
	})
}

// LoginFailedUserDisabled logs a failed login due to disabled account.
func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserDisabled,
		UserID:        &userID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "user disabled",
		Details: map[string]string{
			"email": email,
		},
	})
}

// Logout logs a user logout.
// Accepts the string ID from SessionUser and converts it to ObjectID.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	var userID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		userID = &oid
	}

	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// Registered logs a new account registration.
func (l *Logger) Registered(ctx context.Context, r *http.Request, userID primitive.ObjectID, authMethod, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventRegistered,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"auth_method": authMethod,
			"email":       email,
		},
	})
}

// PasswordChanged logs a password change.
func (l *Logger) PasswordChanged(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventPasswordChanged,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// OAuthLinked logs a Google account being linked to an existing user.
func (l *Logger) OAuthLinked(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventOAuthLinked,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"email": email,
		},
	})
}

/*───────────────────────────────*| admin events |*──────────────────────────*/

// RoleGranted logs when an admin grants a role to a user.
func (l *Logger) RoleGranted(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventRoleGranted,
		UserID:    &targetUserID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"role": role,
		},
	})
}

// UserDisabled logs when an admin disables a user account.
func (l *Logger) UserDisabled(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserDisabled,
		UserID:    &targetUserID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// UserEnabled logs when an admin enables a user account.
func (l *Logger) UserEnabled(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserEnabled,
		UserID:    &targetUserID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// AdminAction logs a generic admin CRUD action (services,
// consultation types, settings).
func (l *Logger) AdminAction(ctx context.Context, r *http.Request, actorID primitive.ObjectID, eventType string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

/*───────────────────────────────*| case events |*───────────────────────────*/

// AppointmentBooked logs a consultation booking.
func (l *Logger) AppointmentBooked(ctx context.Context, r *http.Request, clientID, apptID primitive.ObjectID, date, slot string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventAppointmentBooked,
		UserID:    &clientID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"appointment_id": apptID.Hex(),
			"date":           date,
			"slot":           slot,
		},
	})
}

// AppointmentCancelled logs an appointment cancellation.
func (l *Logger) AppointmentCancelled(ctx context.Context, r *http.Request, actorID, apptID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventAppointmentCancelled,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"appointment_id": apptID.Hex(),
		},
	})
}

// CaseCreated logs the opening of a legal case.
func (l *Logger) CaseCreated(ctx context.Context, r *http.Request, actorID, caseID, clientID primitive.ObjectID, caseNumber string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventCaseCreated,
		UserID:    &clientID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"case_id":     caseID.Hex(),
			"case_number": caseNumber,
		},
	})
}

// CaseStatusChanged logs a case status transition.
func (l *Logger) CaseStatusChanged(ctx context.Context, r *http.Request, actorID, caseID primitive.ObjectID, from, to string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventCaseStatusChanged,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"case_id": caseID.Hex(),
			"from":    from,
			"to":      to,
		},
	})
}

// CaseAssigned logs a lawyer assignment to a case.
func (l *Logger) CaseAssigned(ctx context.Context, r *http.Request, actorID, caseID, lawyerID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventCaseAssigned,
		UserID:    &lawyerID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"case_id": caseID.Hex(),
		},
	})
}

// DocumentUploaded logs a document upload to a case.
func (l *Logger) DocumentUploaded(ctx context.Context, r *http.Request, actorID, caseID, docID primitive.ObjectID, fileName string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryCase,
		EventType: audit.EventDocumentUploaded,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"case_id":     caseID.Hex(),
			"document_id": docID.Hex(),
			"file_name":   fileName,
		},
	})
}
