package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the resolved identity injected into r.Context().
// It is re-fetched on every request so role grants, disabled
// accounts, and profile edits take effect immediately.
type SessionUser struct {
	ID            string
	Name          string
	Email         string
	Role          models.Role
	PreferredLang string
}

// UserFetcher loads a fresh SessionUser for the given user ID.
// Implementations must apply the default-role fallback themselves:
// a failed role lookup with a valid user resolves to RoleClient, and
// only a failed user lookup returns an error.
type UserFetcher interface {
	FetchSessionUser(ctx context.Context, userID string) (*SessionUser, error)
}

type ctxKey string

const (
	currentUserKey   ctxKey = "currentUser"
	resolveFailedKey ctxKey = "sessionResolveFailed"
)

// CurrentUser returns the user from context and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// ResolveFailed reports whether session resolution hit a transport or
// server error on this request. Guards treat this as a retryable
// error rather than guessing a role.
func ResolveFailed(r *http.Request) bool {
	failed, _ := r.Context().Value(resolveFailedKey).(bool)
	return failed
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// WithResolveFailure marks the request as having failed session
// resolution. Test helper only.
func WithResolveFailure(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), resolveFailedKey, true))
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie session store and the middleware
// that resolves the current identity. One instance is created at
// startup and passed to route builders; nothing is held in package
// globals.
type SessionManager struct {
	store       *sessions.CookieStore
	sessionName string
	fetcher     UserFetcher
	log         *zap.Logger
}

// NewSessionManager builds a SessionManager with a cookie store.
// In production (secure=true) cookies are Secure with SameSite=None;
// in dev over http, Lax so cookies are accepted on localhost.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	keyBytes := []byte(sessionKey)
	if sessionKey == "" {
		// Ephemeral key: every restart signs everyone out. Fine for
		// local experiments, never for a real deployment.
		keyBytes = securecookie.GenerateRandomKey(32)
		if keyBytes == nil {
			return nil, fmt.Errorf("generate ephemeral session key failed")
		}
		logger.Warn("session key not configured; using an ephemeral key, sessions will not survive restarts")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore(keyBytes)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		store:       store,
		sessionName: sessionName,
		log:         logger,
	}, nil
}

// SetUserFetcher wires the store-backed fetcher used to resolve a
// fresh SessionUser on each request.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// GetSession returns the request's session, creating a fresh one if
// the cookie is missing or undecodable.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.sessionName)
}

// SignIn marks the session authenticated for the given user ID.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Undecodable cookie: Get returned a fresh session we can use.
		sm.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session cookie invalid during sign-out", zap.Error(err))
	}
	delete(sess.Values, isAuthKey)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser resolves the current identity on every request and
// injects it into context. Cookie decode failures resolve silently to
// "no user"; a fetcher failure for a valid session is recorded so
// guards can render a retry page instead of guessing.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.sessionName)
		if err != nil {
			// Treat an undecodable cookie as unauthenticated.
			next.ServeHTTP(w, r)
			return
		}

		isAuth, _ := sess.Values[isAuthKey].(bool)
		userID, _ := sess.Values[userIDKey].(string)
		if !isAuth || userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		if sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := sm.fetcher.FetchSessionUser(r.Context(), userID)
		if err != nil {
			sm.log.Error("session user fetch failed",
				zap.Error(err),
				zap.String("user_id", userID))
			r = r.WithContext(context.WithValue(r.Context(), resolveFailedKey, true))
			next.ServeHTTP(w, r)
			return
		}
		if u == nil {
			// Account deleted since sign-in: continue unauthenticated.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context.
// If not signed in:
//   - HTML: 303 redirect to /auth?redirect=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ResolveFailed(r) {
			serveResolveError(w, r)
			return
		}
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToSignIn(w, r)
	})
}

// RequireRole ensures the user holds one of the allowed roles.
// Admin is a universal override: an admin passes every role gate.
// A signed-in user with the wrong role is sent to the access-denied
// page, which names both the required and the held role.
func (sm *SessionManager) RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ResolveFailed(r) {
				serveResolveError(w, r)
				return
			}

			u, ok := CurrentUser(r)
			if !ok {
				redirectToSignIn(w, r)
				return
			}

			if u.Role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if _, has := set[u.Role]; has {
				next.ServeHTTP(w, r)
				return
			}

			dest := "/forbidden?required=" + url.QueryEscape(requiredParam(allowed))
			if wantsHTML(r) {
				http.Redirect(w, r, dest, http.StatusSeeOther)
				return
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))
	if wantsHTML(r) {
		http.Redirect(w, r, "/auth?redirect="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// serveResolveError is the Errored guard state: the session was
// present but identity resolution failed. Render a retryable error,
// never a guessed role.
func serveResolveError(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		w.Header().Set("Retry-After", "5")
		http.Error(w, "We could not verify your session. Please try again.", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, "session resolution failed", http.StatusServiceUnavailable)
}

func requiredParam(allowed []models.Role) string {
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		names = append(names, role.String())
	}
	return strings.Join(names, ",")
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "text/html") {
		return true
	}
	// Browser form posts and top-level navigations may omit Accept;
	// only JSON/API clients are treated as non-HTML.
	return accept == "" || strings.Contains(accept, "*/*")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
