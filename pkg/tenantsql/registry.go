package tenantsql

import "sync"

// Registry records operations that are exempt from tenant isolation. Absence
// from the registry means isolation applies; exemption is always an explicit
// declaration.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]struct{})}
}

// Ignore declares the given operations tenant-agnostic.
func (r *Registry) Ignore(ops ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range ops {
		r.ops[op] = struct{}{}
	}
}

// Ignored reports whether the operation bypasses rewriting.
func (r *Registry) Ignored(op string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[op]
	return ok
}
