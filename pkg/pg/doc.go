// Package pg bootstraps the PostgreSQL layer behind the tenant-scoped query
// path: a pgx/v5 connection pool configured from environment variables,
// connected with retry, plus health-check and error-classification helpers.
//
// The pool returned by Connect satisfies tenantsql.DB, so it is normally
// wrapped in a tenantsql.Querier rather than queried directly:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	db := tenantsql.NewQuerier(pool, rewriter)
//
// Configuration comes from the environment via github.com/caarlos0/env; see
// the Config field tags for variable names and defaults.
package pg
