// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/mizanlegal/mizan/internal/app/features/errors"
	"github.com/mizanlegal/mizan/internal/app/store/oauthstate"
	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/auditlog"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/normalize"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth sign-in. First-time Google users get a
// client account created on the spot; returning users are matched by
// email.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	StateStore *oauthstate.Store
	Users      *userstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		AuditLog:     audit,
		StateStore:   oauthstate.New(db),
		Users:        userstore.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/auth?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("generate OAuth state failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=internal", http.StatusSeeOther)
		return
	}

	redirect := query.Get(r, "redirect")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, redirect, expiresAt); err != nil {
		h.Log.Error("save OAuth state failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/auth?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/auth?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	redirect, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("validate OAuth state failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/auth?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/auth?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("exchange OAuth code failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("fetch Google user info failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=user_info", http.StatusSeeOther)
		return
	}
	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified", zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/auth?error=email_unverified", http.StatusSeeOther)
		return
	}

	u, err := h.findOrCreateUser(ctxTimeout, r, googleUser)
	if err != nil {
		if errors.Is(err, errUserDisabled) {
			http.Redirect(w, r, "/auth?error=account_disabled", http.StatusSeeOther)
			return
		}
		h.Log.Error("resolve Google user failed", zap.Error(err))
		http.Redirect(w, r, "/auth?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session after Google login failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		http.Redirect(w, r, "/auth?error=session", http.StatusSeeOther)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, u.ID, "google", u.Email)

	dest := urlutil.SafeReturn(redirect, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| User lookup                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

var errUserDisabled = errors.New("user disabled")

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

// findOrCreateUser matches a verified Google account to a portal user
// by email, creating a client account for first-time visitors.
func (h *Handler) findOrCreateUser(ctx context.Context, r *http.Request, g *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByEmail(ctx, g.Email)
	if err == nil {
		if normalize.Status(u.Status) == "disabled" {
			h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, g.Email)
			return nil, errUserDisabled
		}
		return u, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := h.Users.Create(ctx, models.User{
		FullName:   g.Name,
		Email:      g.Email,
		AuthMethod: "google",
	})
	if err != nil {
		return nil, err
	}

	h.AuditLog.Registered(ctx, r, created.ID, "google", created.Email)
	h.AuditLog.OAuthLinked(ctx, r, created.ID, created.Email)

	h.Log.Info("created account from Google sign-in",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))
	return &created, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
