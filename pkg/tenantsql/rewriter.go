package tenantsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xwb1989/sqlparser"

	"github.com/contentware/tenantguard/pkg/tenant"
)

// DefaultColumn is the tenant discriminator column shared by all isolated
// tables in the platform schema.
const DefaultColumn = "tenant_id"

// Policy decides what happens when a query cannot be parsed.
type Policy int

const (
	// FailOpen executes the original query unmodified and logs the event.
	// Availability over strict isolation for statements the parser cannot
	// understand.
	FailOpen Policy = iota

	// FailClosed refuses to execute a query that cannot be rewritten.
	FailClosed
)

// Rewriter injects tenant predicates into read queries.
type Rewriter struct {
	column   string
	policy   Policy
	log      *slog.Logger
	registry *Registry
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithColumn overrides the tenant column name.
func WithColumn(column string) Option {
	return func(r *Rewriter) {
		if column != "" {
			r.column = column
		}
	}
}

// WithPolicy sets the parse-failure policy.
func WithPolicy(p Policy) Option {
	return func(r *Rewriter) { r.policy = p }
}

// WithLogger sets the logger for fail-open events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Rewriter) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRegistry sets the ignore registry consulted per operation.
func WithRegistry(reg *Registry) Option {
	return func(r *Rewriter) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// New creates a Rewriter. Defaults: tenant_id column, FailOpen policy, the
// process default slog logger, an empty ignore registry.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{
		column:   DefaultColumn,
		policy:   FailOpen,
		log:      slog.Default(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the ignore registry so operations can be declared
// tenant-agnostic after construction.
func (r *Rewriter) Registry() *Registry {
	return r.registry
}

// Rewrite narrows the query to the active tenant. op identifies the calling
// operation for the ignore registry and for logging. The returned string is
// the query to execute; it is the input unchanged when the operation is
// ignored, the context carries a bypass marker or no tenant, or the statement
// is not a SELECT.
func (r *Rewriter) Rewrite(ctx context.Context, op, query string) (string, error) {
	if r.registry.Ignored(op) || bypassed(ctx) {
		return query, nil
	}

	id, ok := tenant.FromContext(ctx)
	if !ok {
		// Tenant-less request: unscoped visibility, documented behavior.
		return query, nil
	}

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		if r.policy == FailClosed {
			return "", errors.Join(ErrUnparsableQuery, err)
		}
		r.log.WarnContext(ctx, "tenant isolation skipped: query not parsable",
			slog.String("op", op),
		)
		return query, nil
	}

	sel, ok := stmt.(sqlparser.SelectStatement)
	if !ok {
		// Only reads are rewritten; writes carry the tenant explicitly.
		return query, nil
	}

	r.inject(sel, r.predicate(id))
	return sqlparser.String(sel), nil
}

// inject walks the statement and appends the predicate to every select
// branch. A UNION gets the predicate in each arm independently.
func (r *Rewriter) inject(stmt sqlparser.SelectStatement, pred sqlparser.Expr) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		if s.Where == nil {
			s.Where = sqlparser.NewWhere(sqlparser.WhereStr, pred)
			return
		}
		if hasConjunct(s.Where.Expr, pred) {
			return
		}
		// The original predicate is kept on the left of the AND. An OR at the
		// top level is parenthesized first so the conjunction binds the whole
		// original condition, not just its last arm.
		left := s.Where.Expr
		if _, ok := left.(*sqlparser.OrExpr); ok {
			left = &sqlparser.ParenExpr{Expr: left}
		}
		s.Where.Expr = &sqlparser.AndExpr{Left: left, Right: pred}
	case *sqlparser.Union:
		r.inject(s.Left, pred)
		r.inject(s.Right, pred)
	case *sqlparser.ParenSelect:
		r.inject(s.Select, pred)
	}
}

// predicate builds `column = value`, rendering purely numeric tenant ids as
// SQL integers and everything else as string literals.
func (r *Rewriter) predicate(id tenant.ID) sqlparser.Expr {
	var value sqlparser.Expr
	if isNumeric(id.String()) {
		value = sqlparser.NewIntVal([]byte(id))
	} else {
		value = sqlparser.NewStrVal([]byte(id))
	}
	return &sqlparser.ComparisonExpr{
		Operator: sqlparser.EqualStr,
		Left:     &sqlparser.ColName{Name: sqlparser.NewColIdent(r.column)},
		Right:    value,
	}
}

// hasConjunct reports whether the predicate already appears as a top-level
// AND conjunct, which keeps repeated rewriting from stacking duplicates.
func hasConjunct(expr, pred sqlparser.Expr) bool {
	if and, ok := expr.(*sqlparser.AndExpr); ok {
		return hasConjunct(and.Left, pred) || hasConjunct(and.Right, pred)
	}
	return sqlparser.String(expr) == sqlparser.String(pred)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
