// Package cache provides content-addressed caching of rendered artifacts.
//
// Keys are derived from the profile bytes and the render options, so any
// change to either invalidates the entry. The FileCache backs CLI runs; the
// NullCache disables caching without branching at call sites.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Keys are content
// addressed, so expiry only bounds disk growth.
const TTLArtifact = 30 * 24 * time.Hour

// Cache stores rendered artifacts between runs.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that participate in artifact keys.
// Two runs with equal profile hash and equal opts produce identical output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Paper  string  `json:"paper"`
	Strict bool    `json:"strict"`
	Scale  float64 `json:"scale,omitempty"`
	Theme  string  `json:"theme,omitempty"` // hash of theme overrides, "" for defaults
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// ProfileKey keys the validated profile by its raw bytes.
	ProfileKey(data []byte) string

	// ArtifactKey keys a rendered artifact by profile hash and options.
	ArtifactKey(profileHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ProfileKey generates a key for profile caching.
func (k *DefaultKeyer) ProfileKey(data []byte) string {
	return hashKey("profile", Hash(data))
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(profileHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", profileHash, opts)
}
