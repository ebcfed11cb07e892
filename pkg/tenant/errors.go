package tenant

import "errors"

var (
	// ErrNoTenantInContext is returned when a required tenant is missing.
	ErrNoTenantInContext = errors.New("tenant: no tenant in context")
)
