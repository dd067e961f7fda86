// Package payment is the HTTP client adapter for the external payment
// gateway. The gateway is opaque to the order core: it either returns a
// charge reference or declines.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

type chargeRequest struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
	Amount  string `json:"amount"`
}

type chargeResponse struct {
	Reference string `json:"reference"`
}

// HTTPGateway implements PaymentGateway against a JSON charge endpoint.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given base URL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Process charges the given amount for an order. A 402 from the gateway is a
// decline, reported as ports.ErrPaymentFailed; any other non-200 response is
// a transport-level failure.
func (g *HTTPGateway) Process(
	ctx context.Context,
	orderID kernel.UUID,
	method string,
	amount kernel.Money,
) (ports.PaymentResult, error) {
	body, err := json.Marshal(chargeRequest{
		OrderID: orderID.String(),
		Method:  method,
		Amount:  amount.String(),
	})
	if err != nil {
		return ports.PaymentResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return ports.PaymentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.PaymentResult{}, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusPaymentRequired:
		return ports.PaymentResult{}, fmt.Errorf("%w: order %s", ports.ErrPaymentFailed, orderID)
	default:
		return ports.PaymentResult{}, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var result chargeResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ports.PaymentResult{}, fmt.Errorf("payment gateway response is malformed: %w", err)
	}
	if result.Reference == "" {
		return ports.PaymentResult{}, fmt.Errorf("payment gateway returned no charge reference")
	}

	return ports.PaymentResult{Reference: result.Reference}, nil
}
