package tenant

import (
	"fmt"
	"net/http"
)

// Default request locations for the tenant identifier.
const (
	DefaultHeader = "Tenant-Id"
	DefaultParam  = "tenantId"
)

// Resolver extracts a tenant identifier from an HTTP request. An empty
// identifier with a nil error means the request carries no tenant.
type Resolver interface {
	Resolve(r *http.Request) (ID, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(r *http.Request) (ID, error)

func (f ResolverFunc) Resolve(r *http.Request) (ID, error) {
	return f(r)
}

// HeaderResolver reads the tenant identifier from an HTTP header.
type HeaderResolver struct {
	header string
}

// NewHeaderResolver creates a resolver for the given header name, defaulting
// to DefaultHeader when empty.
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = DefaultHeader
	}
	return &HeaderResolver{header: header}
}

func (h *HeaderResolver) Resolve(r *http.Request) (ID, error) {
	return ID(r.Header.Get(h.header)), nil
}

// ParamResolver reads the tenant identifier from a query or form parameter.
type ParamResolver struct {
	param string
}

// NewParamResolver creates a resolver for the given parameter name,
// defaulting to DefaultParam when empty.
func NewParamResolver(param string) *ParamResolver {
	if param == "" {
		param = DefaultParam
	}
	return &ParamResolver{param: param}
}

func (p *ParamResolver) Resolve(r *http.Request) (ID, error) {
	if v := r.URL.Query().Get(p.param); v != "" {
		return ID(v), nil
	}
	// FormValue parses the body for form posts; harmless for other methods.
	return ID(r.FormValue(p.param)), nil
}

// CompositeResolver tries resolvers in order and returns the first non-empty
// identifier.
type CompositeResolver struct {
	resolvers []Resolver
}

// NewCompositeResolver creates a resolver chain evaluated front to back.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (ID, error) {
	for _, resolver := range c.resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			return "", fmt.Errorf("tenant: resolve: %w", err)
		}
		if !id.IsZero() {
			return id, nil
		}
	}
	return "", nil
}

// DefaultResolver returns the platform's standard resolution chain: the
// Tenant-Id header first, then the tenantId request parameter.
func DefaultResolver() Resolver {
	return NewCompositeResolver(
		NewHeaderResolver(DefaultHeader),
		NewParamResolver(DefaultParam),
	)
}
