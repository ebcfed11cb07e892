package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// Secret signs bearer tokens. Short secrets are stretched by the codec.
	Secret string `env:"AUTH_SECRET,required"`

	// BearerTTL is the lifetime of both the bearer token and the stored
	// session record.
	BearerTTL time.Duration `env:"AUTH_BEARER_TTL" envDefault:"30m"`

	// RefreshTTL is the lifetime of refresh-token snapshots. Must strictly
	// exceed BearerTTL.
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"720h"`

	// RefreshPrefix is prepended to refresh ids to form the opaque refresh
	// token handed to clients.
	RefreshPrefix string `env:"AUTH_REFRESH_PREFIX" envDefault:"rt_"`

	// SlidingThreshold is how close to expiry a validated session must be
	// before its expiry is silently extended. Zero disables sliding renewal.
	SlidingThreshold time.Duration `env:"AUTH_SLIDING_THRESHOLD" envDefault:"10m"`

	// BearerHeader carries the bearer token, "Bearer "-prefixed.
	BearerHeader string `env:"AUTH_BEARER_HEADER" envDefault:"Authorization"`

	// StoreTimeout bounds each session store round-trip. A store call that
	// exceeds it fails closed as "no session".
	StoreTimeout time.Duration `env:"AUTH_STORE_TIMEOUT" envDefault:"3s"`
}

// DefaultConfig returns the defaults used when no environment is loaded.
// Secret is intentionally empty; New rejects it.
func DefaultConfig() Config {
	return Config{
		BearerTTL:        30 * time.Minute,
		RefreshTTL:       30 * 24 * time.Hour,
		RefreshPrefix:    "rt_",
		SlidingThreshold: 10 * time.Minute,
		BearerHeader:     "Authorization",
		StoreTimeout:     3 * time.Second,
	}
}
