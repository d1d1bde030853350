// Package cache stores rendered background artifacts.
//
// Generation is deterministic, so an artifact is fully identified by the hash
// of its resolved configuration and the render options. Three backends
// implement [Cache]:
//   - [FileCache]: one JSON entry per key under a directory (CLI default)
//   - [RedisCache]: shared storage for several serve instances
//   - [NullCache]: never stores anything (--no-cache)
//
// Cache failures are never fatal to callers; the pipeline logs them and
// regenerates.
package cache

import (
	"context"
	"time"
)

// ArtifactTTL is how long rendered output is kept.
const ArtifactTTL = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the data for key and whether it was found. Expired and
	// corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
