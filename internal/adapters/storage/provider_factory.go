package storage

import (
	"context"
	"fmt"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/pkg/config"
)

// NewStorageProvider creates the configured object-storage provider.
// Unset provider falls back to the mock store for local development.
func NewStorageProvider(ctx context.Context, cfg config.StorageConfig) (providers.StorageProvider, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryAdapter(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	case "s3":
		return NewS3Adapter(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Endpoint)
	case "mock", "":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
