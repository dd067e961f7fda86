package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items and full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateWithStatusCheck persists the aggregate's new status, courier
	// assignment, and appended history entry, conditional on the stored row
	// still being in expectedStatus. When another actor moved the order
	// first the update affects no rows and order.ErrStatusConflict is
	// returned: of two racing transitions exactly one succeeds.
	UpdateWithStatusCheck(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// CountActiveForCourier returns how many orders the courier currently
	// has in picked_up or delivering. Used by the single-delivery policy
	// when deciding whether a courier may claim another order.
	CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error)
}
