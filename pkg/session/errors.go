package session

import "errors"

var (
	// ErrNoToken means no bearer token was presented.
	ErrNoToken = errors.New("session: no token")

	// ErrInvalidToken means the bearer failed signature verification or is
	// malformed. Treated as bad input, never as a server fault.
	ErrInvalidToken = errors.New("session: invalid token")

	// ErrSessionNotFound means no live session backs the presented token.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrSessionExpired means the stored session's own expiry has passed.
	ErrSessionExpired = errors.New("session: expired")

	// ErrIDGeneration means the random source failed while minting an id.
	ErrIDGeneration = errors.New("session: id generation failed")

	// ErrStoreUnavailable wraps store faults other than a plain miss.
	ErrStoreUnavailable = errors.New("session: store unavailable")

	// ErrInvalidConfig is returned by New for unusable configuration.
	ErrInvalidConfig = errors.New("session: invalid config")
)

// IsNoSession reports whether the error is one of the normal "no session"
// outcomes of Validate, as opposed to a store fault.
func IsNoSession(err error) bool {
	return errors.Is(err, ErrNoToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired)
}
