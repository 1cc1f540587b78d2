package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"blog-go/internal/blog"
	"blog-go/internal/config"
	"blog-go/internal/database"
)

// DefaultTimeout bounds each call to a network backend when the config
// does not set timeout_seconds.
const DefaultTimeout = 10 * time.Second

// NewStoreFromConfig creates a KVStore implementation based on the store config type.
// instanceID namespaces the shared backends (redis and s3).
func NewStoreFromConfig(cfg config.StoreConfig, instanceID string) (blog.KVStore, error) {
	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem store requires fs_root to be set")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite store requires data_dir to be set")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return database.NewSQLiteStore(filepath.Join(cfg.DataDir, "blog.db"))
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres store requires postgres_dsn to be set")
		}
		return database.NewPostgresStore(cfg.PostgresDSN, timeout)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis store requires redis_addr to be set")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStore(client, instanceID, timeout), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 store requires s3_bucket to be set")
		}
		client, err := newS3Client(cfg, timeout)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3Bucket, objectPrefix(cfg.S3Prefix, instanceID), timeout), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

// objectPrefix joins the configured prefix and instance id into an
// object key prefix.
func objectPrefix(prefix, instanceID string) string {
	if prefix == "" {
		return instanceID
	}
	if instanceID == "" {
		return prefix
	}
	return prefix + "/" + instanceID
}
