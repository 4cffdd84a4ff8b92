package orderclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kkorolev/shop-cart/internal/transport"
)

func TestPlaceOrder(t *testing.T) {
	var got placeOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(placeOrderResponse{OrderID: 55})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	lines := []transport.OrderLine{
		{ItemID: 1, Quantity: 2},
		{ItemID: 3, Quantity: 1},
	}

	orderID, err := client.PlaceOrder(context.Background(), lines, "user@shop.test")
	require.NoError(t, err)
	require.Equal(t, uint(55), orderID)
	require.Equal(t, "user@shop.test", got.Email)
	require.Equal(t, lines, got.Lines)
}

func TestPlaceOrderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PlaceOrder(context.Background(), nil, "user@shop.test")
	require.Error(t, err)
}
