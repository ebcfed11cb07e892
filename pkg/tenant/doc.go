// Package tenant establishes the active tenant for an inbound request and
// propagates it through the request context.
//
// A tenant identity is resolved once at the edge of the request pipeline and
// installed into the context by the Middleware. Downstream code — most notably
// the query rewriter in pkg/tenantsql — reads it back with FromContext. The
// identity lives exactly as long as the request: it is carried on a context
// derived for that request, so it is released on every exit path, including
// panics and client disconnects, and can never leak to another request.
//
// # Resolution
//
// Resolvers extract the identifier from the request. The built-in chain used
// by the platform checks the Tenant-Id header first and falls back to the
// tenantId request parameter:
//
//	resolver := tenant.NewCompositeResolver(
//		tenant.NewHeaderResolver(tenant.DefaultHeader),
//		tenant.NewParamResolver(tenant.DefaultParam),
//	)
//	router.Use(tenant.Middleware(resolver))
//
// A request that resolves no identifier proceeds without a tenant. That is
// deliberate: system and cross-tenant operations run unscoped, and callers
// that must not run unscoped opt into rejection with RequireTenant.
package tenant
