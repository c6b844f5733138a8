// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"html/template"
	"net/http"

	settingsstore "github.com/mizanlegal/mizan/internal/app/store/settings"
	"github.com/mizanlegal/mizan/internal/app/system/auth"
	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, db, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site settings (from database)
	SiteName   string
	SiteNameAr string
	LogoURL    string
	FooterHTML template.HTML

	// Language and direction for the <html> element. The portal is
	// Arabic-first; Lang/Dir flip to en/ltr when the user prefers
	// English.
	Lang string
	Dir  string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	RoleLabel  string
	UserName   string

	// Unread notification badge for the header bell.
	UnreadCount int

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
}

// storageProvider is set by Init and used to generate logo URLs.
var storageProvider storage.Store

// UnreadCounter loads the unread notification count for a user.
// Set by bootstrap to avoid a store import cycle.
type UnreadCounter func(ctx context.Context, userID string) int

var unreadCounter UnreadCounter

// Init sets the storage provider for generating logo URLs.
// Call this once at startup from bootstrap.
func Init(store storage.Store) {
	storageProvider = store
}

// SetUnreadCounter sets the function used to load the notification
// badge count. Call once at startup after the notification store is
// available.
func SetUnreadCounter(counter UnreadCounter) {
	unreadCounter = counter
}

// NewBaseVM creates a fully populated BaseVM for a page.
// This is the preferred way to create a BaseVM for embedding in view models.
//
// Parameters:
//   - r: the HTTP request
//   - db: database for loading site settings (can be nil for defaults)
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, db *mongo.Database, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		SiteNameAr:  models.DefaultSiteNameAr,
		Lang:        "ar",
		Dir:         "rtl",
		IsLoggedIn:  signedIn,
		Role:        role.String(),
		RoleLabel:   role.LabelAr(),
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if u, ok := auth.CurrentUser(r); ok && u.PreferredLang == "en" {
		vm.Lang, vm.Dir = "en", "ltr"
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		store := settingsstore.New(db)
		settings, err := store.Get(ctx)
		if err == nil {
			if settings.SiteName != "" {
				vm.SiteName = settings.SiteName
			}
			if settings.SiteNameAr != "" {
				vm.SiteNameAr = settings.SiteNameAr
			}
			vm.FooterHTML = template.HTML(settings.FooterHTML)
			if settings.HasLogo() && storageProvider != nil {
				vm.LogoURL = storageProvider.URL(settings.LogoPath)
			}
		}
	}

	if signedIn && unreadCounter != nil {
		if u, ok := auth.CurrentUser(r); ok {
			vm.UnreadCount = unreadCounter(r.Context(), u.ID)
		}
	}

	return vm
}

// GetSettings returns the full site settings, or defaults if not available.
func GetSettings(ctx context.Context, db *mongo.Database) models.SiteSettings {
	if db == nil {
		return models.SiteSettings{SiteName: models.DefaultSiteName, SiteNameAr: models.DefaultSiteNameAr}
	}

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil {
		return models.SiteSettings{SiteName: models.DefaultSiteName, SiteNameAr: models.DefaultSiteNameAr}
	}
	return settings
}
