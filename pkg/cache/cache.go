// Package cache provides caching for parsed graphs and query results.
//
// Counting queries on large graphs are pure functions of the graph bytes and
// the query parameters, which makes them ideal cache candidates. This package
// defines the Cache interface plus backends for different deployments:
//   - FileCache: file-based storage for CLI usage
//   - RedisCache: Redis-backed storage for the API server
//   - NullCache: no-op cache for tests or when caching is disabled
//
// # Keys
//
// Keyer generates stable cache keys from the graph content hash and the
// query parameters. Two graphs with identical bytes share cache entries;
// any change to the graph or the query produces a new key. ScopedKeyer
// prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache storage backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CountKeyOpts captures the parameters of a path-count query.
type CountKeyOpts struct {
	Start  string   `json:"start"`
	Target string   `json:"target"`
	Avoid  []string `json:"avoid,omitempty"`
	Via    []string `json:"via,omitempty"`
}

// PropagateKeyOpts captures the parameters of a propagation query.
type PropagateKeyOpts struct {
	Source string `json:"source"`
	RankBy string `json:"rank_by,omitempty"`
}

// Keyer generates cache keys for the query types.
type Keyer interface {
	// GraphKey generates a key for a parsed graph, from its content hash.
	GraphKey(graphHash string) string

	// CountKey generates a key for a path-count result.
	CountKey(graphHash string, opts CountKeyOpts) string

	// PropagateKey generates a key for a propagation result.
	PropagateKey(graphHash string, opts PropagateKeyOpts) string
}

// DefaultKeyer generates keys by hashing the query parameters.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a parsed graph.
func (k *DefaultKeyer) GraphKey(graphHash string) string {
	return hashKey("graph", graphHash)
}

// CountKey generates a key for a path-count result.
func (k *DefaultKeyer) CountKey(graphHash string, opts CountKeyOpts) string {
	return hashKey("count", graphHash, opts)
}

// PropagateKey generates a key for a propagation result.
func (k *DefaultKeyer) PropagateKey(graphHash string, opts PropagateKeyOpts) string {
	return hashKey("propagate", graphHash, opts)
}
