package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentware/tenantguard/pkg/authtoken"
)

// Manager owns the session and refresh-token lifecycle. It orchestrates the
// stateless bearer codec and the shared key-value store; nothing else writes
// session records.
type Manager struct {
	codec *authtoken.Codec
	store Store
	cfg   Config
	log   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a Manager. The refresh TTL must strictly exceed the bearer TTL
// so a refresh token always outlives the sessions it can replace.
func New(cfg Config, store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	if cfg.BearerTTL <= 0 {
		return nil, fmt.Errorf("%w: bearer TTL must be positive", ErrInvalidConfig)
	}
	if cfg.RefreshTTL <= cfg.BearerTTL {
		return nil, fmt.Errorf("%w: refresh TTL must exceed bearer TTL", ErrInvalidConfig)
	}

	codec, err := authtoken.New(cfg.Secret)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		codec: codec,
		store: store,
		cfg:   cfg,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// IssueOption customizes a session at issue time.
type IssueOption func(*Session)

// WithDeviceMeta records client device metadata on the session.
func WithDeviceMeta(meta map[string]string) IssueOption {
	return func(s *Session) { s.DeviceMeta = meta }
}

// Issue creates a new session for an authenticated principal and returns the
// signed bearer pointing at it.
func (m *Manager) Issue(ctx context.Context, userID, tenantID string, roles, permissions []string, opts ...IssueOption) (string, *Session, error) {
	id, err := newSessionID()
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:          id,
		UserID:      userID,
		TenantID:    tenantID,
		Roles:       roles,
		Permissions: permissions,
		IssuedAt:    now,
		ExpiresAt:   now.Add(m.cfg.BearerTTL),
	}
	for _, opt := range opts {
		opt(sess)
	}

	if err := m.putSession(ctx, sess); err != nil {
		return "", nil, err
	}

	bearer, err := m.codec.Sign(sess.ID, m.cfg.BearerTTL)
	if err != nil {
		// Roll back the orphaned record; it is unreachable without a bearer.
		_ = m.store.Delete(ctx, loginKey(sess.ID))
		return "", nil, err
	}

	return bearer, sess, nil
}

// Validate resolves a bearer token to its session. The second return value is
// a fresh bearer when the presented one was expired but the session was still
// alive (transparent reactivation); it is empty otherwise. Absence of a
// session is reported through the sentinel errors (see IsNoSession), not by
// panicking or failing the request.
func (m *Manager) Validate(ctx context.Context, bearer string) (*Session, string, error) {
	if bearer == "" {
		return nil, "", ErrNoToken
	}

	res := m.codec.Verify(bearer)
	switch res.Status {
	case authtoken.StatusValid:
		sess, err := m.loadSession(ctx, res.SessionID)
		if err != nil {
			return nil, "", err
		}
		if m.cfg.SlidingThreshold > 0 && time.Until(sess.ExpiresAt) < m.cfg.SlidingThreshold {
			m.extend(ctx, sess)
		}
		return sess, "", nil

	case authtoken.StatusExpired:
		// The signature is authentic, only the token's own clock ran out.
		// If the session behind it is still alive, the login continues and
		// the client gets a replacement bearer.
		sess, err := m.loadSession(ctx, res.SessionID)
		if err != nil {
			return nil, "", err
		}
		fresh, err := m.codec.Sign(sess.ID, m.cfg.BearerTTL)
		if err != nil {
			return nil, "", err
		}
		return sess, fresh, nil

	default:
		return nil, "", ErrInvalidToken
	}
}

// Revoke deletes the session behind the bearer. The still-signed bearer then
// resolves to nothing on subsequent Validate calls. Expired-but-authentic
// bearers are accepted so logout works after the token's own expiry.
func (m *Manager) Revoke(ctx context.Context, bearer string) error {
	if bearer == "" {
		return ErrNoToken
	}

	res := m.codec.Verify(bearer)
	if res.Status == authtoken.StatusInvalid {
		return ErrInvalidToken
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()
	return m.store.Delete(ctx, loginKey(res.SessionID))
}

// refreshRecord is the stored snapshot behind a refresh token.
type refreshRecord struct {
	Session   Session   `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateRefreshToken persists a snapshot of the session under a new refresh
// id with the long refresh TTL and returns the opaque client token
// (configured prefix + refresh id).
func (m *Manager) CreateRefreshToken(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID == "" {
		return "", ErrSessionNotFound
	}

	refreshID := uuid.NewString()
	record := refreshRecord{
		Session:   *sess,
		ExpiresAt: time.Now().Add(m.cfg.RefreshTTL),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("session: marshal refresh record: %w", err)
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()
	if err := m.store.Put(ctx, refreshKey(refreshID), data, m.cfg.RefreshTTL); err != nil {
		return "", err
	}

	return m.cfg.RefreshPrefix + refreshID, nil
}

// RedeemRefreshToken returns the session snapshot behind the token. The
// caller then calls Issue to mint a brand-new session/bearer pair; the old
// session is not extended and the refresh token's own TTL is untouched.
func (m *Manager) RedeemRefreshToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	refreshID := strings.TrimPrefix(token, m.cfg.RefreshPrefix)
	if refreshID == token && m.cfg.RefreshPrefix != "" {
		return nil, ErrInvalidToken
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()

	key := refreshKey(refreshID)
	data, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, m.normalizeStoreErr(ctx, err)
	}

	var record refreshRecord
	if err := json.Unmarshal(data, &record); err != nil {
		m.evict(ctx, key, "corrupt refresh record")
		return nil, ErrSessionNotFound
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return &record.Session, nil
}

// loadSession fetches and checks the session record for the given id. Cache
// misses, timeouts, expired records, and corrupt payloads all normalize to
// the sentinel "no session" errors; a corrupt entry is evicted on the way.
func (m *Manager) loadSession(ctx context.Context, sessionID string) (*Session, error) {
	ctx, cancel := m.storeContext(ctx)
	defer cancel()

	key := loginKey(sessionID)
	data, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, m.normalizeStoreErr(ctx, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.evict(ctx, key, "corrupt session payload")
		return nil, ErrSessionNotFound
	}

	if sess.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &sess, nil
}

// extend pushes the session expiry out to a full bearer TTL from now and
// re-persists it. Best effort: two requests racing here write equivalent
// payloads and last write wins.
func (m *Manager) extend(ctx context.Context, sess *Session) {
	sess.ExpiresAt = time.Now().Add(m.cfg.BearerTTL)
	if err := m.putSession(ctx, sess); err != nil {
		m.log.WarnContext(ctx, "sliding session renewal failed",
			slog.String("session_id", sess.ID),
			slog.Any("error", err),
		)
	}
}

func (m *Manager) putSession(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: marshal session: %w", err)
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()
	return m.store.Put(ctx, loginKey(sess.ID), data, time.Until(sess.ExpiresAt))
}

// evict removes a bad cache entry so it cannot poison future lookups.
func (m *Manager) evict(ctx context.Context, key, reason string) {
	if err := m.store.Delete(ctx, key); err != nil {
		m.log.WarnContext(ctx, "failed to evict cache entry",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return
	}
	m.log.WarnContext(ctx, "evicted cache entry", slog.String("reason", reason))
}

func (m *Manager) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.cfg.StoreTimeout)
}

// normalizeStoreErr maps store failures onto the validation taxonomy: misses
// stay misses, deadline overruns fail closed as misses, anything else is a
// store fault worth surfacing.
func (m *Manager) normalizeStoreErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		m.log.WarnContext(ctx, "session store timed out, failing closed", slog.Any("error", err))
		return ErrSessionNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return err
	default:
		return errors.Join(ErrStoreUnavailable, err)
	}
}
