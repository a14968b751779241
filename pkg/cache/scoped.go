package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several stored graphs share one cache backend and their
// entries must not collide.
//
// Example usage:
//
//	// Per-graph keys in the API server
//	graphKeyer := NewScopedKeyer(NewDefaultKeyer(), "graph:9f2c:")
//
//	// Global keys for ad-hoc CLI queries
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a parsed graph.
func (k *ScopedKeyer) GraphKey(graphHash string) string {
	return k.prefix + k.inner.GraphKey(graphHash)
}

// CountKey generates a prefixed key for a path-count result.
func (k *ScopedKeyer) CountKey(graphHash string, opts CountKeyOpts) string {
	return k.prefix + k.inner.CountKey(graphHash, opts)
}

// PropagateKey generates a prefixed key for a propagation result.
func (k *ScopedKeyer) PropagateKey(graphHash string, opts PropagateKeyOpts) string {
	return k.prefix + k.inner.PropagateKey(graphHash, opts)
}
