// Package cache provides byte caches for compiled scenes and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: entries on local disk, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the cached value: a scene is keyed by the hash of the source document
// plus compile options, an artifact by the hash of the scene plus render
// options. [ScopedKeyer] prefixes every key for per-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	SceneTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
