package tenantsql_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentware/tenantguard/pkg/tenantsql"
)

// recordingDB captures the SQL that would hit the database.
type recordingDB struct {
	lastSQL string
}

func (r *recordingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.lastSQL = sql
	return nil, nil
}

func (r *recordingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	r.lastSQL = sql
	return nil
}

func (r *recordingDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.lastSQL = sql
	return pgconn.CommandTag{}, nil
}

func TestQuerier(t *testing.T) {
	t.Parallel()

	t.Run("query is rewritten before execution", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		q := tenantsql.NewQuerier(db, tenantsql.New())

		_, err := q.Query(scopedCtx("7"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where tenant_id = 7", db.lastSQL)
	})

	t.Run("query row is rewritten before execution", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		q := tenantsql.NewQuerier(db, tenantsql.New())

		_, err := q.QueryRow(scopedCtx("7"), "articles.get", "SELECT * FROM article WHERE id = 1")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where id = 1 and tenant_id = 7", db.lastSQL)
	})

	t.Run("fail closed refusal never reaches the database", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		q := tenantsql.NewQuerier(db, tenantsql.New(tenantsql.WithPolicy(tenantsql.FailClosed)))

		_, err := q.Query(scopedCtx("7"), "articles.raw", "SELEKT chaos")
		require.ErrorIs(t, err, tenantsql.ErrUnparsableQuery)
		assert.Empty(t, db.lastSQL)
	})

	t.Run("exec passes through untouched", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		q := tenantsql.NewQuerier(db, tenantsql.New())

		sql := "UPDATE article SET status = 2 WHERE id = 5"
		_, err := q.Exec(scopedCtx("7"), sql)
		require.NoError(t, err)
		assert.Equal(t, sql, db.lastSQL)
	})
}
