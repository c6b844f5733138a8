// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to this portal lives: MongoDB
// connection details, session and CSRF secrets, document storage,
// Google OAuth credentials, and audit logging modes.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: mizan-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // Secret key for gorilla/csrf token signing

	// File storage for case documents and site branding
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/documents")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/documents")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "documents/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Audit logging modes: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string // Authentication events (login, register, password change)
	AuditLogAdmin string // Admin actions (role grants, CRUD, settings)
	AuditLogCase  string // Client activity (bookings, cases, documents)

	// Google OAuth configuration (sign-in is disabled when blank)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks and links in outgoing text
	BaseURL string // e.g., "https://mizan.example" or "http://localhost:3000"

	// Admin bootstrap: a user with this email is promoted to admin on
	// startup so a fresh deployment is never locked out.
	AdminEmail string
}
