package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ActiveForCourierQueryHandler backs the courier dashboard: available pickups
// plus the courier's own in-flight deliveries.
type ActiveForCourierQueryHandler struct {
	db *gorm.DB
}

// NewActiveForCourierQueryHandler creates a handler for courier working-set
// queries. Requires a GORM database connection for query execution.
func NewActiveForCourierQueryHandler(db *gorm.DB) ActiveForCourierQueryHandler {
	return ActiveForCourierQueryHandler{db: db}
}

// Handle returns unclaimed orders in "ready_for_pickup" status together with
// the orders this courier has picked up and not yet delivered. Ready orders
// come first so new work is at the top of the dashboard.
func (h ActiveForCourierQueryHandler) Handle(
	ctx context.Context,
	query ActiveForCourierQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderRows(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE (status = ? AND courier_id IS NULL)
		   OR (courier_id = ? AND status IN (?, ?))
		ORDER BY courier_id NULLS FIRST, created_at
	`, kernel.RoleCourier,
		order.StatusReadyForPickup.String(),
		query.CourierID().Bytes(),
		order.StatusPickedUp.String(),
		order.StatusDelivering.String())
}
