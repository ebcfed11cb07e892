package tenantsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the Querier needs. Satisfied by
// *pgxpool.Pool, pgx.Tx, and test doubles.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Querier enforces tenant rewriting at the storage call site: every read goes
// through the Rewriter before it reaches the database, so forgetting the
// predicate in a repository is not possible.
type Querier struct {
	db       DB
	rewriter *Rewriter
}

// NewQuerier wraps a database handle with the given rewriter.
func NewQuerier(db DB, rewriter *Rewriter) *Querier {
	return &Querier{db: db, rewriter: rewriter}
}

// Query rewrites and executes a read. op names the calling operation for the
// ignore registry.
func (q *Querier) Query(ctx context.Context, op, sql string, args ...any) (pgx.Rows, error) {
	rewritten, err := q.rewriter.Rewrite(ctx, op, sql)
	if err != nil {
		return nil, err
	}
	return q.db.Query(ctx, rewritten, args...)
}

// QueryRow rewrites and executes a single-row read. Unlike pgx it returns an
// error eagerly so a FailClosed rewrite refusal is not deferred to Scan.
func (q *Querier) QueryRow(ctx context.Context, op, sql string, args ...any) (pgx.Row, error) {
	rewritten, err := q.rewriter.Rewrite(ctx, op, sql)
	if err != nil {
		return nil, err
	}
	return q.db.QueryRow(ctx, rewritten, args...), nil
}

// Exec passes writes through untouched; isolation of writes is the business
// layer's responsibility, reads are the rewriter's.
func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, sql, args...)
}
