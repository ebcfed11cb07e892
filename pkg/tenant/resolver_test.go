package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentware/tenantguard/pkg/tenant"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewHeaderResolver("")

	t.Run("reads default header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles", nil)
		req.Header.Set("Tenant-Id", "7")

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID("7"), id)
	})

	t.Run("empty when header absent", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles", nil)

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.True(t, id.IsZero())
	})
}

func TestParamResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewParamResolver("")

	t.Run("reads query parameter", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles?tenantId=acme", nil)

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID("acme"), id)
	})

	t.Run("reads form parameter", func(t *testing.T) {
		t.Parallel()

		form := url.Values{"tenantId": {"9"}}
		req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID("9"), id)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.DefaultResolver()

	t.Run("header wins over parameter", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles?tenantId=param", nil)
		req.Header.Set("Tenant-Id", "header")

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID("header"), id)
	})

	t.Run("falls back to parameter", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles?tenantId=param", nil)

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID("param"), id)
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/articles", nil)

		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.True(t, id.IsZero())
	})
}
