package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentware/tenantguard/pkg/tenant"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithID(context.Background(), "7")
		id, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tenant.ID("7"), id)
	})

	t.Run("empty context has no tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("empty id is not installed", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithID(context.Background(), "")
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("derived context does not leak upward", func(t *testing.T) {
		t.Parallel()

		parent := context.Background()
		_ = tenant.WithID(parent, "acme")

		_, ok := tenant.FromContext(parent)
		assert.False(t, ok)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := tenant.LoggerExtractor()

	attr, ok := extract(tenant.WithID(context.Background(), "42"))
	require.True(t, ok)
	assert.Equal(t, "tenant_id", attr.Key)
	assert.Equal(t, "42", attr.Value.String())

	_, ok = extract(context.Background())
	assert.False(t, ok)
}
