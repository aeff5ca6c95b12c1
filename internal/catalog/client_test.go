package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListProductsSendsPagingParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"iPhone 15 Pro","price":999.99,"stock":50,"category":"smartphones","brand":"Apple","dimensions":{"width":70.6,"height":146.6,"depth":8.25},"reviews":[{"rating":5,"reviewerName":"Ana"}],"meta":{"barcode":"123"}}],"total":1,"skip":30,"limit":30}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	page, err := client.ListProducts(context.Background(), 30, 30)
	require.NoError(t, err)
	require.Contains(t, gotQuery, "limit=30")
	require.Contains(t, gotQuery, "skip=30")
	require.Len(t, page.Products, 1)

	product := page.Products[0]
	require.Equal(t, int64(1), product.ID)
	require.Equal(t, "smartphones", product.Category)
	require.InDelta(t, 8.25, product.Dimensions.Depth, 0.0001)
	require.Equal(t, "Ana", product.Reviews[0].ReviewerName)
	require.Equal(t, "123", product.Meta.Barcode)
}

func TestListCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slug":"smartphones","name":"Smartphones","url":"x"},{"slug":"laptops","name":"Laptops","url":"y"}]`))
	}))
	defer server.Close()

	categories, err := NewClient(server.URL+"/", time.Second).ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "laptops", categories[1].Slug)
}

func TestNon2xxIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).ListProducts(context.Background(), 30, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFetch))
	require.Contains(t, err.Error(), "status 503")
}

func TestMalformedBodyIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).ListProducts(context.Background(), 30, 0)
	require.ErrorIs(t, err, ErrFetch)
}

func TestTransportErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := NewClient(baseURL, 200*time.Millisecond).ListCategories(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestRetryRecoversFromUpstream5xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[],"total":0,"skip":0,"limit":30}`))
	}))
	defer server.Close()

	page, err := NewClient(server.URL, time.Second, WithRetry(2, time.Millisecond)).ListProducts(context.Background(), 30, 0)
	require.NoError(t, err)
	require.Empty(t, page.Products)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRetryDoesNotRepeat4xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, WithRetry(2, time.Millisecond)).ListCategories(context.Background())
	require.ErrorIs(t, err, ErrFetch)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
