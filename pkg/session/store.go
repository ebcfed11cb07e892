package session

import (
	"context"
	"time"
)

// Cache key prefixes. Session records and refresh snapshots live in separate
// key spaces of the same store.
const (
	loginKeyPrefix   = "login_tokens:"
	refreshKeyPrefix = "refresh_tokens:"
)

// Store is a dumb key-value backend with TTL semantics. It holds serialized
// payloads and applies no business logic; the Manager owns all lifecycle
// decisions. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores the value under key, expiring after ttl.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value for key, or ErrSessionNotFound when the key is
	// absent or already expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

func loginKey(sessionID string) string {
	return loginKeyPrefix + sessionID
}

func refreshKey(refreshID string) string {
	return refreshKeyPrefix + refreshID
}
