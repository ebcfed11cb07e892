// Package tenantsql narrows outbound read queries to the active tenant's rows
// without the call sites having to remember the predicate.
//
// The Rewriter parses a SELECT into its AST, appends a tenant equality
// predicate to the WHERE clause of every branch (including every arm of a
// UNION, so no branch can smuggle unscoped rows), and serializes the tree
// back to SQL. A caller-supplied predicate is always preserved; the tenant
// condition is ANDed onto it. Rewriting is idempotent: a predicate already
// present is not added twice.
//
//	rw := tenantsql.New(tenantsql.WithColumn("tenant_id"))
//	sql, err := rw.Rewrite(ctx, "articles.list", "SELECT * FROM article")
//	// with tenant 7 in ctx: "select * from article where tenant_id = 7"
//
// Two escape hatches bypass rewriting: operations registered on the ignore
// Registry (declared tenant-agnostic, e.g. admin cross-tenant lookups), and
// the WithBypass context marker for call-site opt-out.
//
// # Failure policy
//
// When the parser cannot understand a query, the choice between availability
// and strict isolation is explicit configuration, not an accident of error
// handling. FailOpen (the default) executes the original query and logs the
// event; FailClosed refuses it. A request with no tenant in context is passed
// through unscoped by design — cross-tenant and system operations depend on
// it; see RequireTenant in pkg/tenant for routes that must not run unscoped.
package tenantsql
