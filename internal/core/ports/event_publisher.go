package ports

import (
	"context"
	"time"
)

// OrderChangedEvent notifies downstream consumers (dashboards, analytics)
// that an order was created or moved to a new status. Dashboards still poll
// the query side; the event stream is for systems that want push semantics.
type OrderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	BusinessID string    `json:"business_id"`
	CourierID  string    `json:"courier_id,omitempty"`
	Status     string    `json:"status"`
	ActorRole  string    `json:"actor_role"`
	Total      string    `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderEventPublisher publishes order lifecycle events after the owning
// transaction commits. Publishing is best effort: a failed publish is logged
// by the caller, never rolled into the business operation's result.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
