package session

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithSession returns a context carrying the validated session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext retrieves the session installed by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MustFromContext retrieves the session or panics. Reserve for handlers
// behind RequireSession.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context")
	}
	return sess
}

// LoggerExtractor returns a context extractor for pkg/logger that stamps the
// authenticated user id on log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if sess, ok := FromContext(ctx); ok {
			return slog.String("user_id", sess.UserID), true
		}
		return slog.Attr{}, false
	}
}
