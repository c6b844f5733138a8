// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings holds site-wide configuration editable by admins.
// There is a single settings document.
type SiteSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	SiteName   string `bson:"site_name" json:"site_name"`
	SiteNameAr string `bson:"site_name_ar,omitempty" json:"site_name_ar,omitempty"`

	// FooterHTML is admin-entered and sanitized before storage.
	FooterHTML string `bson:"footer_html,omitempty" json:"footer_html,omitempty"`

	ContactEmail string `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone string `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`

	// LogoPath is the storage key of the uploaded site logo.
	LogoPath string `bson:"logo_path,omitempty" json:"logo_path,omitempty"`

	UpdatedAt     *time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}

// HasLogo reports whether a logo has been uploaded.
func (s SiteSettings) HasLogo() bool {
	return s.LogoPath != ""
}

// Defaults used when no settings document exists yet.
const (
	DefaultSiteName   = "Mizan Legal Aid"
	DefaultSiteNameAr = "ميزان للمساعدة القانونية"
)
