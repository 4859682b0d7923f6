package store

import (
	"context"
	"fmt"

	"dbu-go/internal/config"
	"dbu-go/internal/dbu"
)

// NewObjectStoreFromConfig creates an ObjectStore implementation based on
// the store config type.
func NewObjectStoreFromConfig(ctx context.Context, cfg config.StoreConfig) (dbu.ObjectStore, error) {
	switch cfg.Type {
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 store requires bucket to be set")
		}
		if cfg.Region == "" {
			return nil, fmt.Errorf("s3 store requires region to be set")
		}
		return NewS3Store(ctx, cfg.Bucket, cfg.Region, cfg.AccessKeyID.Value(), cfg.SecretAccessKey.Value())
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem store requires fs_root to be set")
		}
		return NewFSStore(cfg.FSRoot)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
