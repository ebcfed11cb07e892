package session

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// bearerFromRequest extracts the raw bearer token. The "Bearer " prefix is
// required; a header without it carries no token.
func (m *Manager) bearerFromRequest(r *http.Request) string {
	value := r.Header.Get(m.cfg.BearerHeader)
	if !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(value, bearerPrefix)
}

// Middleware authenticates the request. A validated session is installed
// into the request context; on transparent reactivation the replacement
// bearer is exposed on the response header. Requests without a usable token
// continue unauthenticated — rejecting them is RequireSession's job.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, fresh, err := m.Validate(r.Context(), m.bearerFromRequest(r))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if fresh != "" {
			w.Header().Set(m.cfg.BearerHeader, bearerPrefix+fresh)
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireSession rejects unauthenticated requests with 401.
func (m *Manager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
