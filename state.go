package masterbatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"masterbatch/storage"
)

// OpenRecipeState returns the backend named by cfg.Driver and a func that
// releases it.
func OpenRecipeState(ctx context.Context, cfg StoreConfig) (storage.RecipeState, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "file":
		slog.Info("SETUP: Using file recipe state", "path", cfg.FilePath)
		return storage.NewFileRecipeState(cfg.FilePath), noop, nil

	case "s3":
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, nil, fmt.Errorf("missing S3 config: MASTERBATCH_S3_BUCKET and MASTERBATCH_S3_KEY must be set")
		}
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("SETUP: Using S3 recipe state", "bucket", cfg.S3Bucket, "key", cfg.S3Key)
		return storage.NewS3RecipeState(client, cfg.S3Bucket, cfg.S3Key), noop, nil

	case "sqlite":
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		bucket := cfg.SQLiteBucket
		if bucket == "" {
			bucket = storage.DefaultSQLiteBucket
		}
		slog.Info("SETUP: Using SQLite recipe state", "path", cfg.SQLitePath, "bucket", bucket)
		st := storage.NewSQLiteRecipeState(db, bucket)
		return st, st.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
