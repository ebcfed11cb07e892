package tenantsql

import "errors"

var (
	// ErrUnparsableQuery is returned under FailClosed when a query cannot be
	// parsed and therefore cannot be scoped to the tenant.
	ErrUnparsableQuery = errors.New("tenantsql: query not parsable, refusing unscoped execution")
)
