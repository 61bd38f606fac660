// Package cache provides pluggable byte caches for rendered avatars.
//
// Backends share a single Cache interface so the HTTP service and the CLI
// can swap between no caching (NullCache), local files (FileCache) and a
// shared Redis instance (RedisCache) without touching call sites. Keys are
// derived from the full generation request so two requests collide only
// when they would render the same image.
package cache

import (
	"context"
	"time"
)

// TTLAvatar is the default lifetime of a cached avatar. Seeded requests are
// fully deterministic, so the TTL mostly bounds storage growth.
const TTLAvatar = 24 * time.Hour

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves data by key. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// AvatarKeyOpts carries every parameter that influences the rendered image.
// Optional fields stay as pointers so unset and explicit-zero hash
// differently.
type AvatarKeyOpts struct {
	Size              int      `json:"size"`
	Text              string   `json:"text,omitempty"`
	ColorList         []string `json:"color_list,omitempty"`
	SquaresPerAxis    int      `json:"squares_per_axis,omitempty"`
	BlurRadius        *int     `json:"blur_radius,omitempty"`
	RotateDegrees     *int     `json:"rotate_degrees,omitempty"`
	Seed              *uint64  `json:"seed,omitempty"`
	SquareBorderColor string   `json:"square_border_color,omitempty"`
	BackgroundColor   string   `json:"background_color,omitempty"`
	FontColor         string   `json:"font_color,omitempty"`
	Font              string   `json:"font,omitempty"`
	FontSize          int      `json:"font_size,omitempty"`
}

// Keyer generates cache keys for rendered avatars.
type Keyer interface {
	// AvatarKey generates a key for a rendered avatar.
	AvatarKey(variant string, opts AvatarKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy: a stable prefix
// plus a hash of the variant and every generation parameter.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AvatarKey generates a key for a rendered avatar.
func (k *DefaultKeyer) AvatarKey(variant string, opts AvatarKeyOpts) string {
	return hashKey("avatar", variant, opts)
}
