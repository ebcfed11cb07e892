package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"slices"
	"time"
)

// Session is the authoritative, revocable record of one login.
type Session struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	TenantID    string            `json:"tenant_id,omitempty"`
	Roles       []string          `json:"roles,omitempty"`
	Permissions []string          `json:"permissions,omitempty"`
	DeviceMeta  map[string]string `json:"device_meta,omitempty"`
	IssuedAt    time.Time         `json:"issued_at"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

// IsExpired reports whether the session's own expiry has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role string) bool {
	return s != nil && slices.Contains(s.Roles, role)
}

// HasPermission reports whether the session carries the given permission.
func (s *Session) HasPermission(perm string) bool {
	return s != nil && slices.Contains(s.Permissions, perm)
}

// newSessionID returns a 32-byte cryptographically random identifier.
// Collision here would let one login overwrite another's slot, so the id
// space must stay effectively collision-free.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
