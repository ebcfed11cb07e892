package tenant

import (
	"net/http"
	"strings"
)

// ErrorHandler renders a response for a boundary failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

type boundaryConfig struct {
	skipPaths    []string
	errorHandler ErrorHandler
}

// Option configures the boundary middleware.
type Option func(*boundaryConfig)

// WithSkipPaths disables tenant resolution for requests whose path has one of
// the given prefixes (health checks, metrics).
func WithSkipPaths(paths ...string) Option {
	return func(c *boundaryConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithErrorHandler overrides the response written when a resolver fails.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *boundaryConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Middleware is the tenant boundary for the request pipeline. It resolves the
// tenant identifier once, installs it into the request context, and invokes
// the rest of the pipeline. The identifier is scoped to the derived context,
// so it is gone when the request unwinds, whether the pipeline returned,
// panicked, or the client went away. A request that resolves nothing runs
// tenant-less; no isolation is applied for it downstream.
func Middleware(resolver Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &boundaryConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			id, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if id.IsZero() {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// RequireTenant rejects requests that reached this point without a resolved
// tenant. Use it on routes that must never run unscoped.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
