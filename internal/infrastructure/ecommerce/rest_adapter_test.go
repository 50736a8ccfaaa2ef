package ecommerce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmesh/backend/internal/domain/integration"
)

func newTestRESTAdapter(t *testing.T, handler http.HandlerFunc) (*RESTAdapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	a, err := NewRESTAdapter(&ChannelConfig{
		Code:      "shop",
		Kind:      KindREST,
		BaseURL:   server.URL,
		APIKey:    "test-key",
		APISecret: "test-secret",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a, server
}

func TestRESTAdapter_SignsRequests(t *testing.T) {
	var gotBody []byte
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/listings/ext-1/stock", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get(HeaderAPIKey))
		assert.Equal(t, "1700000000", r.Header.Get(HeaderTimestamp))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))

		cfg := &ChannelConfig{APISecret: "test-secret"}
		assert.Equal(t, cfg.Sign(r.Method, r.URL.RequestURI(), "1700000000", gotBody), r.Header.Get(HeaderSignature))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, a.UpdateStock(context.Background(), "ext-1", 7))
	assert.JSONEq(t, `{"quantity":7}`, string(gotBody))
}

func TestRESTAdapter_CreateListing(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/listings", r.URL.Path)

		var body createListingBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Lamp", body.Title)
		assert.True(t, body.Price.Equal(decimal.RequireFromString("12.50")))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"external_id":"ext-9","url":"https://shop.example/ext-9"}`))
	})

	receipt, err := a.CreateListing(context.Background(), integration.ListingRequest{
		ItemID:   "item-1",
		Title:    "Lamp",
		Price:    decimal.RequireFromString("12.50"),
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-9", receipt.ExternalID)
	assert.Equal(t, "https://shop.example/ext-9", receipt.URL)
}

func TestRESTAdapter_CreateListingWithoutExternalID(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := a.CreateListing(context.Background(), integration.ListingRequest{Title: "Lamp"})
	assert.ErrorIs(t, err, integration.ErrParse)
}

func TestRESTAdapter_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		call     func(a *RESTAdapter) error
		sentinel error
	}{
		{
			name:   "unauthorized is an auth error on any operation",
			status: http.StatusUnauthorized,
			call: func(a *RESTAdapter) error {
				_, err := a.FetchMarketData(context.Background(), "item-1")
				return err
			},
			sentinel: integration.ErrAuthentication,
		},
		{
			name:     "forbidden on authenticate",
			status:   http.StatusForbidden,
			call:     func(a *RESTAdapter) error { return a.Authenticate(context.Background()) },
			sentinel: integration.ErrAuthentication,
		},
		{
			name:   "market data upstream failure",
			status: http.StatusBadGateway,
			call: func(a *RESTAdapter) error {
				_, err := a.FetchMarketData(context.Background(), "item-1")
				return err
			},
			sentinel: integration.ErrMarketData,
		},
		{
			name:   "history upstream failure",
			status: http.StatusInternalServerError,
			call: func(a *RESTAdapter) error {
				_, err := a.GetPriceHistory(context.Background(), "item-1", 7)
				return err
			},
			sentinel: integration.ErrHistoricalData,
		},
		{
			name:     "stock update rejected",
			status:   http.StatusConflict,
			call:     func(a *RESTAdapter) error { return a.UpdateStock(context.Background(), "ext-1", 1) },
			sentinel: integration.ErrMarketplace,
		},
		{
			name:     "end listing not found",
			status:   http.StatusNotFound,
			call:     func(a *RESTAdapter) error { return a.EndListing(context.Background(), "ext-1") },
			sentinel: integration.ErrMarketplace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			err := tt.call(a)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, integration.ErrMarketplace)
		})
	}
}

func TestRESTAdapter_TransportFailure(t *testing.T) {
	a, server := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := a.FetchMarketData(context.Background(), "item-1")
	assert.ErrorIs(t, err, integration.ErrMarketData)
}

func TestRESTAdapter_GetStockLevel(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.URL.Path == "/listings/known/stock" {
			_, _ = w.Write([]byte(`{"quantity":5}`))
			return
		}
		_, _ = w.Write([]byte(`{"quantity":null}`))
	})

	qty, err := a.GetStockLevel(context.Background(), "known")
	require.NoError(t, err)
	require.NotNil(t, qty)
	assert.Equal(t, 5, *qty)

	qty, err = a.GetStockLevel(context.Background(), "other")
	require.NoError(t, err)
	assert.Nil(t, qty)
}

func TestRESTAdapter_MarketDataRoundTrip(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/market-data/sku 1", r.URL.Path)
		_, _ = w.Write([]byte(`{"timestamp":"2024-05-01T10:00:00Z","listings":[{"price":"5.00","condition":"Used","description":"ok"}],"total_listings":1}`))
	})

	raw, err := a.FetchMarketData(context.Background(), "sku 1")
	require.NoError(t, err)
	data, err := a.ParseResponse(raw)
	require.NoError(t, err)
	assert.True(t, data.AvgPrice.Equal(decimal.NewFromInt(5)))
	assert.True(t, data.HasDescriptions)
}

func TestRESTAdapter_GetPriceHistory(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price-history/item-1", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"item_id":"item-1","daily_prices":[
			{"date":"2024-05-01T00:00:00Z","average_price":10.5,"total_listings":3},
			{"date":"2024-05-02T00:00:00Z","average_price":11,"total_listings":4}]}`))
	})

	h, err := a.GetPriceHistory(context.Background(), "item-1", 2)
	require.NoError(t, err)
	require.Len(t, h.DailyPrices, 2)
	assert.Equal(t, 4, h.DailyPrices[1].TotalListings)
	assert.True(t, h.DailyPrices[0].AvgPrice.Equal(decimal.RequireFromString("10.5")))
}

func TestRESTAdapter_GetPriceHistoryBadPayload(t *testing.T) {
	a, _ := newTestRESTAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily_prices":[{"date":"soon"}]}`))
	})
	_, err := a.GetPriceHistory(context.Background(), "item-1", 2)
	assert.ErrorIs(t, err, integration.ErrHistoricalData)
}
