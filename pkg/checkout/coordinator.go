// Package checkout converts a cart into a persisted order: it mirrors the
// cart server-side, creates the order from a snapshot, and clears the cart
// only after the server acknowledges.
package checkout

import (
	"bytes"
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

var tracer = otel.Tracer("quickbite/pkg/checkout")

// Submission carries the delivery details for one checkout attempt.
type Submission struct {
	Address string
	Phone   string
	UserID  string
}

// CreatedOrder is the acknowledgment returned by the order endpoint.
type CreatedOrder struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []cart.Line     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

type orderRequest struct {
	Address string          `json:"address"`
	Phone   string          `json:"phone"`
	UserID  string          `json:"userId"`
	Items   []cart.Line     `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   CreatedOrder `json:"order"`
}

type Coordinator struct {
	baseURL string
	client  *http.Client
}

func NewCoordinator(baseURL string) *Coordinator {
	return &Coordinator{baseURL: baseURL, client: otelhttp.DefaultClient}
}

// Submit runs one checkout attempt. The two network calls run sequentially:
// a failed cart mirror aborts the submission before any order is created, and
// the engine is cleared only after the order endpoint acknowledges. On any
// failure the cart state is preserved for a manual retry.
func (co *Coordinator) Submit(
	c context.Context,
	param Submission,
	engine *cart.Engine,
) (CreatedOrder, error) {
	c, span := tracer.Start(c, "Coordinator Submit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str("tag", "Coordinator Submit").
		Str("userId", param.UserID).
		Logger()

	logger = logger.With().Str("process", "validating submission").Logger()
	logger.Info().Msg("validating submission")
	if param.Address == "" {
		return CreatedOrder{}, &ValidationError{Reason: "address is required"}
	}
	if param.Phone == "" {
		return CreatedOrder{}, &ValidationError{Reason: "phone is required"}
	}
	if param.UserID == "" {
		return CreatedOrder{}, &ValidationError{Reason: "user is required"}
	}
	snapshot := engine.Lines()
	if len(snapshot) == 0 {
		return CreatedOrder{}, &ValidationError{Reason: "cart is empty"}
	}
	logger.Info().Msg("validated submission")

	logger = logger.With().Str("process", "mirroring cart").Logger()
	logger.Info().Msg("mirroring cart")
	span.AddEvent("mirroring cart")
	if err := co.mirrorCart(c, param.UserID, snapshot); err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return CreatedOrder{}, err
	}
	span.AddEvent("mirrored cart")
	logger.Info().Msg("mirrored cart")

	// The total is recomputed from the snapshot; no externally cached total
	// is trusted.
	total := decimal.Zero
	for _, line := range snapshot {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	logger = logger.With().Str("process", "creating order").Logger()
	logger.Info().Msg("creating order")
	span.AddEvent("creating order")
	created, err := co.createOrder(c, orderRequest{
		Address: param.Address,
		Phone:   param.Phone,
		UserID:  param.UserID,
		Items:   snapshot,
		Total:   total,
	})
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return CreatedOrder{}, err
	}
	span.AddEvent("created order")
	logger.Info().Msgf("created order id=%s", created.ID)

	logger = logger.With().Str("process", "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	engine.Clear()
	logger.Info().Msg("cleared cart")

	return created, nil
}

func (co *Coordinator) mirrorCart(c context.Context, userId string, lines []cart.Line) error {
	body, err := json.Marshal(map[string]interface{}{"cart": lines})
	if err != nil {
		return &SyncError{Err: fmt.Errorf("failed marshaling cart with error=%w", err)}
	}

	url := fmt.Sprintf("%s/api/users/%s/cart", co.baseURL, userId)
	req, err := http.NewRequestWithContext(c, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return &SyncError{Err: fmt.Errorf("failed creating cart mirror request with error=%w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := co.client.Do(req)
	if err != nil {
		return &SyncError{Err: fmt.Errorf("failed sending cart mirror request with error=%w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SyncError{Err: fmt.Errorf("cart mirror returned status=%d", resp.StatusCode)}
	}
	return nil
}

func (co *Coordinator) createOrder(c context.Context, param orderRequest) (CreatedOrder, error) {
	body, err := json.Marshal(param)
	if err != nil {
		return CreatedOrder{}, &OrderError{Err: fmt.Errorf("failed marshaling order with error=%w", err)}
	}

	url := co.baseURL + "/api/orders"
	req, err := http.NewRequestWithContext(c, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return CreatedOrder{}, &OrderError{Err: fmt.Errorf("failed creating order request with error=%w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := co.client.Do(req)
	if err != nil {
		return CreatedOrder{}, &OrderError{Err: fmt.Errorf("failed sending order request with error=%w", err)}
	}
	defer resp.Body.Close()

	respBody := orderResponse{}
	decodeErr := json.NewDecoder(resp.Body).Decode(&respBody)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CreatedOrder{}, &OrderError{Message: respBody.Message, StatusCode: resp.StatusCode}
	}
	if decodeErr != nil {
		return CreatedOrder{}, &OrderError{
			Err:        fmt.Errorf("failed decoding order response with error=%w", decodeErr),
			StatusCode: resp.StatusCode,
		}
	}
	return respBody.Order, nil
}
