// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the portal.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: MIZAN_MONGO_URI, MIZAN_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mizan", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "mizan-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "csrf_key", Default: "dev-only-csrf-change-me-0123456789ABCDEF", Desc: "CSRF token signing key (must be strong in production)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/documents", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files/documents", Desc: "URL prefix for serving local files"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "documents/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_case", Default: "all", Desc: "Case/booking event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Base URL for OAuth callbacks
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of a user promoted to admin on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MIZAN_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MIZAN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		CSRFKey:          appValues.String("csrf_key"),

		// File storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		// Audit logging
		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
		AuditLogCase:  appValues.String("audit_log_case"),

		// Google OAuth
		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		// Base URL
		BaseURL: appValues.String("base_url"),

		// Admin bootstrap
		AdminEmail: appValues.String("admin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// The MongoDB URI format is validated here to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" {
			return fmt.Errorf("storage_type 'local' requires storage_local_path")
		}
	case "s3":
		if appCfg.StorageS3Region == "" || appCfg.StorageS3Bucket == "" {
			return fmt.Errorf("storage_type 's3' requires storage_s3_region and storage_s3_bucket")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (want 'local' or 's3')", appCfg.StorageType)
	}

	// Google sign-in needs both halves of the credential pair.
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	return nil
}
