// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// buildStorage creates the document/branding storage backend from app
// config. Local storage serves files straight off disk; S3 optionally
// fronts them with CloudFront signed URLs.
func buildStorage(appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		store, err := storage.NewS3(context.Background(), storage.S3Config{
			Region:                   appCfg.StorageS3Region,
			Bucket:                   appCfg.StorageS3Bucket,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		logger.Info("using S3 storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("region", appCfg.StorageS3Region))
		return store, nil

	default:
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		logger.Info("using local storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL))
		return store, nil
	}
}
