package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type so no other package can collide with or
// overwrite the installed tenant.
type contextKey struct{}

// WithID returns a context carrying the given tenant identifier. Empty
// identifiers are not installed.
func WithID(ctx context.Context, id ID) context.Context {
	if id.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the active tenant identifier. The boolean is false
// for tenant-less requests.
func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(contextKey{}).(ID)
	if !ok || id.IsZero() {
		return "", false
	}
	return id, true
}

// MustFromContext retrieves the active tenant identifier or panics. Reserve
// this for handlers that are unreachable without a tenant.
func MustFromContext(ctx context.Context) ID {
	id, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor returns a context extractor for pkg/logger that stamps the
// tenant id on log records emitted within a tenant-scoped request.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := FromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
