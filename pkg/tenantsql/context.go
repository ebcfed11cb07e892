package tenantsql

import "context"

type bypassKey struct{}

// WithBypass marks the context so queries executed under it skip tenant
// rewriting regardless of the active tenant. Call-site counterpart of the
// ignore registry, for one-off cross-tenant reads.
func WithBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func bypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}
