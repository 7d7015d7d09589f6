package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple projects can share one
// cache directory without key collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "client-acme:")
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

// ProfileKey generates a prefixed key for profile caching.
func (k *ScopedKeyer) ProfileKey(data []byte) string {
	return k.prefix + k.inner.ProfileKey(data)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(profileHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(profileHash, opts)
}
