// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs zap logging with user-facing error pages so
// handlers can report a failure in one call. The log message carries
// the technical detail; the user sees only the friendly message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

type errorPageData struct {
	Title   string
	Message string
	BackURL string
}

// LogBadRequest logs a client error and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_generic", errorPageData{
		Title:   "Invalid request",
		Message: userMsg,
		BackURL: backURL,
	})
}

// LogServerError logs a server-side failure and renders a 500 page
// with a retry-able generic message. The technical error never
// reaches the response.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_generic", errorPageData{
		Title:   "Something went wrong",
		Message: userMsg,
		BackURL: backURL,
	})
}

// LogNotFound logs a missing-resource access and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.String("path", r.URL.Path))

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_generic", errorPageData{
		Title:   "Not found",
		Message: userMsg,
		BackURL: backURL,
	})
}
