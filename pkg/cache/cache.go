// Package cache provides pluggable result caching for posetrank.
//
// Rank statistics are pure functions of the comparability matrix and the
// enumeration limits, which makes them ideal cache material: keys are hashes
// of the inputs and entries never go stale, only cold. Backends:
//   - [FileCache]: file-based cache for CLI usage
//   - [RedisCache]: Redis-backed cache for server deployments
//   - [NullCache]: no-op cache for tests or --no-cache runs
//
// Keys are produced by a [Keyer]; wrap one in a [ScopedKeyer] to isolate
// namespaces when several deployments share a Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache stores raw bytes under string keys with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Default TTLs per entry kind. Entries never go stale, so the TTLs only
// bound disk and memory usage.
const (
	// TTLRelation applies to partial orders derived from graphs.
	TTLRelation = 7 * 24 * time.Hour

	// TTLStats applies to rank statistics results, which are the expensive
	// entries worth keeping longest.
	TTLStats = 30 * 24 * time.Hour
)

// StatsKeyOpts captures the enumeration limits that shape a statistics
// result. Different limits can produce different outcomes (success versus
// intractable), so they are part of the key.
type StatsKeyOpts struct {
	MaxElements int
	MaxSteps    int64
}

// Keyer generates cache keys for the analysis pipeline.
type Keyer interface {
	// RelationKey identifies a derived partial order by the graph it came
	// from and the derivation used.
	RelationKey(graphHash, derivation string) string

	// StatsKey identifies a statistics result by the relation it summarizes
	// and the limits it was computed under.
	StatsKey(relationHash string, opts StatsKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// RelationKey generates a key for a derived relation.
func (k *DefaultKeyer) RelationKey(graphHash, derivation string) string {
	return hashKey("relation", graphHash, derivation)
}

// StatsKey generates a key for a rank statistics result.
func (k *DefaultKeyer) StatsKey(relationHash string, opts StatsKeyOpts) string {
	return hashKey("stats", relationHash, opts.MaxElements, opts.MaxSteps)
}
