package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

func TestFeaturedFallsBackWhenBackendUnreachable(t *testing.T) {
	svc := NewLandingService(dairyapi.NewClient("http://backend.invalid"), nil)

	products := svc.Featured(context.Background())

	require.Len(t, products, 3)
	assert.Equal(t, 52.0, float64(products[0].Price))
	assert.Equal(t, 68.0, float64(products[1].Price))
	assert.Equal(t, 35.0, float64(products[2].Price))
}

func TestFeaturedFallsBackOnEmptyCatalog(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	products := NewLandingService(dairyapi.NewClient(backend.URL), nil).Featured(context.Background())
	require.Len(t, products, 3)
}

func TestFeaturedServesCatalogWhenAvailable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/featured_products/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"product_id":9,"name":"A2 Milk","price":"62.00","is_featured":true}]}`))
	}))
	defer backend.Close()

	products := NewLandingService(dairyapi.NewClient(backend.URL), nil).Featured(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "A2 Milk", products[0].Name)
	assert.Equal(t, 62.0, float64(products[0].Price))
}
