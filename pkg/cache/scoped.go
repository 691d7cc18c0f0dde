package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This matters when several deployments or test runs share a single Redis
// instance and their entries must not collide.
//
// Example usage:
//
//	// Keys for one project
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:abc:")
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

// RelationKey generates a prefixed key for a derived relation.
func (k *ScopedKeyer) RelationKey(graphHash, derivation string) string {
	return k.prefix + k.inner.RelationKey(graphHash, derivation)
}

// StatsKey generates a prefixed key for a rank statistics result.
func (k *ScopedKeyer) StatsKey(relationHash string, opts StatsKeyOpts) string {
	return k.prefix + k.inner.StatsKey(relationHash, opts)
}
