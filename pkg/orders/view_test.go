package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/pkg/cart"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func TestViewList(t *testing.T) {
	t.Run("given orders should decode the bare array", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		served := []Order{
			{
				ID:     "order-2",
				UserID: "user-1",
				Items: []cart.Line{
					{ItemID: "item-1", Title: "Chicken Zinger Burger", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
				},
				Total:           decimal.NewFromInt(200),
				DeliveryAddress: "221B Baker Street",
				Phone:           "9876543210",
				Status:          "pending",
				CreatedAt:       now,
			},
			{
				ID:     "order-1",
				UserID: "user-1",
				Items: []cart.Line{
					{ItemID: "item-2", Title: "Hot Wings (6 pcs)", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
				},
				Total:           decimal.NewFromInt(50),
				DeliveryAddress: "221B Baker Street",
				Phone:           "9876543210",
				Status:          "delivered",
				CreatedAt:       now.Add(-time.Hour),
			},
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/orders/user-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(served)
		}))
		defer server.Close()

		actual, err := NewView(server.URL).List(testContext(), "user-1")

		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "order-2", actual[0].ID, "orders should arrive newest first")
		assert.Equal(t, "order-1", actual[1].ID)
		assert.True(t, decimal.NewFromInt(200).Equal(actual[0].Total))
		assert.Equal(t, "pending", actual[0].Status)
	})

	t.Run("given no orders should return an empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]Order{})
		}))
		defer server.Close()

		actual, err := NewView(server.URL).List(testContext(), "user-1")

		require.NoError(t, err)
		assert.Empty(t, actual)
	})

	t.Run("given server failure should return an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "orders unavailable"})
		}))
		defer server.Close()

		_, err := NewView(server.URL).List(testContext(), "user-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orders unavailable")
	})
}
