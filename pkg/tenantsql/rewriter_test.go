package tenantsql_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentware/tenantguard/pkg/tenant"
	"github.com/contentware/tenantguard/pkg/tenantsql"
)

func scopedCtx(id tenant.ID) context.Context {
	return tenant.WithID(context.Background(), id)
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	rw := tenantsql.New()

	t.Run("select without where gains the predicate", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("7"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		// The serializer normalizes keywords to lower case.
		assert.Equal(t, "select * from article where tenant_id = 7", got)
	})

	t.Run("existing where is preserved and conjoined", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("7"), "articles.published",
			"SELECT * FROM article WHERE status = 1")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where status = 1 and tenant_id = 7", got)
	})

	t.Run("top-level or is parenthesized before conjoining", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("7"), "articles.visible",
			"SELECT * FROM article WHERE status = 1 OR featured = 1")
		require.NoError(t, err)
		assert.Equal(t,
			"select * from article where (status = 1 or featured = 1) and tenant_id = 7", got)
	})

	t.Run("every union branch gets the predicate", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("7"), "content.search",
			"SELECT id FROM article UNION SELECT id FROM category")
		require.NoError(t, err)
		assert.Equal(t,
			"select id from article where tenant_id = 7 union select id from category where tenant_id = 7",
			got)
	})

	t.Run("three-way union leaves no branch unscoped", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("7"), "content.search",
			"SELECT id FROM article UNION SELECT id FROM category UNION SELECT id FROM attachment")
		require.NoError(t, err)
		assert.Equal(t,
			"select id from article where tenant_id = 7 union select id from category where tenant_id = 7 union select id from attachment where tenant_id = 7",
			got)
	})

	t.Run("non-numeric tenant renders as string literal", func(t *testing.T) {
		t.Parallel()

		got, err := rw.Rewrite(scopedCtx("acme"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where tenant_id = 'acme'", got)
	})

	t.Run("rewriting is idempotent", func(t *testing.T) {
		t.Parallel()

		ctx := scopedCtx("7")
		once, err := rw.Rewrite(ctx, "articles.list", "SELECT * FROM article WHERE status = 1")
		require.NoError(t, err)

		twice, err := rw.Rewrite(ctx, "articles.list", once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("no tenant in context passes through unscoped", func(t *testing.T) {
		t.Parallel()

		query := "SELECT * FROM article"
		got, err := rw.Rewrite(context.Background(), "articles.list", query)
		require.NoError(t, err)
		assert.Equal(t, query, got)
	})

	t.Run("non-select statements pass through", func(t *testing.T) {
		t.Parallel()

		query := "UPDATE article SET status = 2 WHERE id = 5"
		got, err := rw.Rewrite(scopedCtx("7"), "articles.update", query)
		require.NoError(t, err)
		assert.Equal(t, query, got)
	})

	t.Run("custom column", func(t *testing.T) {
		t.Parallel()

		custom := tenantsql.New(tenantsql.WithColumn("org_id"))
		got, err := custom.Rewrite(scopedCtx("7"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where org_id = 7", got)
	})
}

func TestRewriteBypass(t *testing.T) {
	t.Parallel()

	t.Run("registered operation is never rewritten", func(t *testing.T) {
		t.Parallel()

		rw := tenantsql.New()
		rw.Registry().Ignore("admin.tenants.list")

		query := "SELECT * FROM article"
		got, err := rw.Rewrite(scopedCtx("7"), "admin.tenants.list", query)
		require.NoError(t, err)
		assert.Equal(t, query, got)
	})

	t.Run("unregistered operation is isolated by default", func(t *testing.T) {
		t.Parallel()

		rw := tenantsql.New()
		rw.Registry().Ignore("admin.tenants.list")

		got, err := rw.Rewrite(scopedCtx("7"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where tenant_id = 7", got)
	})

	t.Run("context bypass marker skips rewriting", func(t *testing.T) {
		t.Parallel()

		rw := tenantsql.New()
		ctx := tenantsql.WithBypass(scopedCtx("7"))

		query := "SELECT * FROM article"
		got, err := rw.Rewrite(ctx, "articles.list", query)
		require.NoError(t, err)
		assert.Equal(t, query, got)
	})
}

func TestRewritePolicy(t *testing.T) {
	t.Parallel()

	const garbage = "SELEKT chaos FRM article"

	t.Run("fail open returns original and logs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		rw := tenantsql.New(tenantsql.WithLogger(log))

		got, err := rw.Rewrite(scopedCtx("7"), "articles.raw", garbage)
		require.NoError(t, err)
		assert.Equal(t, garbage, got)
		assert.Contains(t, buf.String(), "tenant isolation skipped")
		assert.Contains(t, buf.String(), "articles.raw")
	})

	t.Run("fail closed refuses the query", func(t *testing.T) {
		t.Parallel()

		rw := tenantsql.New(tenantsql.WithPolicy(tenantsql.FailClosed))

		_, err := rw.Rewrite(scopedCtx("7"), "articles.raw", garbage)
		require.ErrorIs(t, err, tenantsql.ErrUnparsableQuery)
	})

	t.Run("fail closed still passes valid queries", func(t *testing.T) {
		t.Parallel()

		rw := tenantsql.New(tenantsql.WithPolicy(tenantsql.FailClosed))

		got, err := rw.Rewrite(scopedCtx("7"), "articles.list", "SELECT * FROM article")
		require.NoError(t, err)
		assert.Equal(t, "select * from article where tenant_id = 7", got)
	})
}
