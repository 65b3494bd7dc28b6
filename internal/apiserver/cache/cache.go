// Package cache provides a small key/value cache for responses fetched from
// third-party APIs, so repeated enrichment requests do not hit upstream rate
// limits.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promptstash/promptstash/internal/common/config"
)

// ErrNotFound is returned when the key is absent or expired
var ErrNotFound = errors.New("cache: key not found")

// Cache stores opaque payloads under string keys with a TTL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// NewCache creates a cache based on configuration. Type "none" (or empty)
// yields an in-process cache.
func NewCache(cfg *config.CacheConfig) (Cache, error) {
	if cfg == nil {
		return NewMemoryCache(), nil
	}
	switch cfg.Type {
	case "redis":
		return NewRedisCache(cfg)
	case "none", "memory", "":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}
