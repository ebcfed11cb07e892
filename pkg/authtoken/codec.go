package authtoken

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// minKeyLen is the HMAC-SHA256 key length. Shorter secrets are stretched,
// never used as-is.
const minKeyLen = 32

// hkdfInfo binds stretched keys to this codec so the same short secret used
// elsewhere derives a different key.
var hkdfInfo = []byte("tenantguard/authtoken/v1")

// Claims is the bearer token payload: a session pointer plus the registered
// temporal claims.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Status classifies the outcome of verifying a token.
type Status int

const (
	// StatusInvalid means the signature did not verify or the token is
	// malformed. Nothing in it can be trusted.
	StatusInvalid Status = iota

	// StatusExpired means the signature verified but the embedded expiry has
	// passed. The claims are authentic and still readable.
	StatusExpired

	// StatusValid means the signature verified and the token is current.
	StatusValid
)

// Result is the outcome of Verify. SessionID is populated for StatusValid and
// StatusExpired; it is empty for StatusInvalid.
type Result struct {
	Status    Status
	SessionID string
	ExpiresAt time.Time
}

// Codec signs and verifies bearer tokens with HMAC-SHA256. It holds no state
// beyond the derived key.
type Codec struct {
	key []byte
}

// New creates a codec from the given secret. Secrets shorter than the HMAC
// key length are stretched with HKDF-SHA256.
func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	key := []byte(secret)
	if len(key) < minKeyLen {
		stretched, err := stretchKey(key)
		if err != nil {
			return nil, errors.Join(ErrKeyDerivation, err)
		}
		key = stretched
	}

	return &Codec{key: key}, nil
}

// Sign issues a token for the given session id expiring ttl from now.
func (c *Codec) Sign(sessionID string, ttl time.Duration) (string, error) {
	if sessionID == "" {
		return "", ErrMissingSessionID
	}

	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("authtoken: sign: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and expiry. It makes no external calls
// and returns a Result rather than an error: the expired-but-authentic case
// is a normal branch for the caller, not an exception.
func (c *Codec) Verify(token string) Result {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		// Expired tokens still parse and carry an authentic signature; the
		// claims stay readable so the caller can attempt reactivation.
		if parsed != nil && errors.Is(err, jwt.ErrTokenExpired) {
			if claims, ok := parsed.Claims.(*Claims); ok && claims.SessionID != "" {
				return Result{
					Status:    StatusExpired,
					SessionID: claims.SessionID,
					ExpiresAt: expiryOf(claims),
				}
			}
		}
		return Result{Status: StatusInvalid}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return Result{Status: StatusInvalid}
	}

	return Result{
		Status:    StatusValid,
		SessionID: claims.SessionID,
		ExpiresAt: expiryOf(claims),
	}
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	return c.key, nil
}

func expiryOf(claims *Claims) time.Time {
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// stretchKey derives a full-length HMAC key from short secret material via
// HKDF-SHA256.
func stretchKey(secret []byte) ([]byte, error) {
	key := make([]byte, minKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, hkdfInfo), key); err != nil {
		return nil, err
	}
	return key, nil
}
