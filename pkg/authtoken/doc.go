// Package authtoken signs and verifies the compact bearer tokens that point
// at server-side sessions.
//
// A bearer token carries only a session id and an expiry; all authority
// (roles, permissions, revocability) lives in the session record behind the
// store. This split keeps tokens verifiable without a store lookup while
// revocation still works: deleting the session kills the login even though
// the signed token cannot be recalled before its embedded expiry.
//
// Verification never uses errors for control flow. Verify returns a Result
// whose Status distinguishes a valid token, an expired token whose claims are
// still readable (the session manager's reactivation path), and garbage. The
// signing secret is stretched with HKDF-SHA256 when it is shorter than the
// HMAC key length; an under-length key is never used directly.
package authtoken
