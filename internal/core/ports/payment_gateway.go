package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrPaymentFailed is returned when the upstream gateway declines a charge.
// Checkout aborts, no order is persisted, and the cart stays intact so the
// customer can retry with a different method.
var ErrPaymentFailed = errors.New("payment was declined")

// PaymentResult carries the gateway's reference for a successful charge.
type PaymentResult struct {
	Reference string
}

// PaymentGateway is the opaque external payment collaborator. Capture
// mechanics, retries, and reconciliation live on the other side of this
// interface.
type PaymentGateway interface {
	// Process charges the given amount for an order. A declined charge
	// returns an error wrapping ErrPaymentFailed; transport failures return
	// their own errors and are equally treated as checkout aborts.
	Process(ctx context.Context, orderID kernel.UUID, method string, amount kernel.Money) (PaymentResult, error)
}
