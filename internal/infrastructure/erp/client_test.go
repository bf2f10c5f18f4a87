package erp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/pkg/config"
)

func TestClient_ListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secreto", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"e1","code":"TAB-01","name":"Tablero","price":"12500.50","stock":7,"unit":"un"}],"has_more":true}`))
	}))
	defer srv.Close()

	c := NewClient(config.ERPConfig{BaseURL: srv.URL + "/", Token: "secreto", RatePerS: 100, RateBurst: 10})
	out, err := c.ListProducts(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "TAB-01", out.Items[0].Code)
	assert.Equal(t, "12500.5", out.Items[0].Price.String())
	assert.Equal(t, 7, out.Items[0].Stock)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 10, out.Limit)
	assert.True(t, out.HasMore)
}

func TestClient_ListProducts_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "caído", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(config.ERPConfig{BaseURL: srv.URL})
	_, err := c.ListProducts(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ListProducts_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":`))
	}))
	defer srv.Close()

	c := NewClient(config.ERPConfig{BaseURL: srv.URL})
	_, err := c.ListProducts(context.Background(), 1, 20)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRemoteUnavailable))
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	// 1 token cada 10 s: la segunda llamada no alcanza a esperar
	c := NewClient(config.ERPConfig{BaseURL: srv.URL, RatePerS: 0.1, RateBurst: 1})
	_, err := c.ListProducts(context.Background(), 1, 20)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.ListProducts(ctx, 1, 20)
	require.Error(t, err)
}
