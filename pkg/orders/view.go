// Package orders is the read-only projection of a user's past orders.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"quickbite/pkg/cart"
)

var tracer = otel.Tracer("quickbite/pkg/orders")

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []cart.Line     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type View struct {
	baseURL string
	client  *http.Client
}

func NewView(baseURL string) *View {
	return &View{baseURL: baseURL, client: otelhttp.DefaultClient}
}

// List fetches all orders for userId, server-sorted newest first. An empty
// result is a valid state. Nothing is cached beyond the returned slice.
func (v *View) List(c context.Context, userId string) ([]Order, error) {
	c, span := tracer.Start(c, "View List")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str("tag", "View List").
		Str("userId", userId).
		Logger()

	logger = logger.With().Str("process", "fetching orders").Logger()
	logger.Info().Msg("fetching orders")
	url := fmt.Sprintf("%s/api/orders/%s", v.baseURL, userId)
	req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed creating orders request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching orders with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody := map[string]interface{}{}
		json.NewDecoder(resp.Body).Decode(&respBody)
		err = fmt.Errorf("orders endpoint returned status=%d with message=%v",
			resp.StatusCode, respBody["message"])
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	orders := []Order{}
	if err = json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		err = fmt.Errorf("failed decoding orders with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("fetched %d orders", len(orders))

	return orders, nil
}
