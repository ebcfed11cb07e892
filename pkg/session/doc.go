// Package session manages the server-side login records behind bearer
// tokens: issuing, validating, silently refreshing, reactivating, and
// revoking them.
//
// The Session stored in the cache is the source of truth for a login. The
// bearer token (see pkg/authtoken) is a short-lived signed pointer to it.
// Validation walks a small state machine:
//
//   - no token presented: no session.
//   - valid signature, session found: the session is returned; when its
//     remaining life drops under the sliding threshold its expiry is quietly
//     extended in the store.
//   - authentic but expired signature, session still alive: the session is
//     returned and a fresh bearer is minted for subsequent requests
//     (transparent reactivation).
//   - session missing, expired, or corrupt in the cache: no session; a
//     corrupt entry is evicted.
//   - signature does not verify: no session, treated as malformed input.
//
// All "no session" outcomes surface as sentinel errors the caller maps to an
// unauthenticated response; only store faults propagate wrapped, and even
// store timeouts fail closed as "no session".
//
// Refresh tokens are a separate long-lived flow: CreateRefreshToken persists
// a snapshot of the session under its own id and much longer TTL, and
// RedeemRefreshToken hands the snapshot back so the caller can Issue a brand
// new session/bearer pair. Redemption never extends the refresh token.
//
// Concurrent validation of one session from two in-flight requests may race
// on the sliding extension; both writes store an equivalent extended payload
// and last write wins, so the race is benign.
package session
