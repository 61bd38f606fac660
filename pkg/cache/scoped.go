package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple applications can
// share one cache backend without colliding. A service embedding avatars
// for several tenants gives each tenant its own prefix.
//
// Example usage:
//
//	// Tenant-specific keys on a shared Redis instance
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
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

// AvatarKey generates a prefixed key for a rendered avatar.
func (k *ScopedKeyer) AvatarKey(variant string, opts AvatarKeyOpts) string {
	return k.prefix + k.inner.AvatarKey(variant, opts)
}
