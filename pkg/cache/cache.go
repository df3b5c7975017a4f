// Package cache stores intermediate wordgraph results (word counts, layouts
// and rendered artifacts) under content-addressed keys.
//
// Three backends share the [Cache] interface:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for `wordgraph serve` instances
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer]. Each stage hashes its input together with every
// option that changes its output, so a key can never refer to stale data and
// entries need no invalidation beyond their TTL.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per stage. Counts depend only on the source text and
// layouts only on counts and options, so both can live long.
const (
	CountsTTL   = 7 * 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with hit == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
