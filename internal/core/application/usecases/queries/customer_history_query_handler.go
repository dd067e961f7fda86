package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// CustomerHistoryQueryHandler backs the customer's order list.
type CustomerHistoryQueryHandler struct {
	db *gorm.DB
}

// NewCustomerHistoryQueryHandler creates a handler for customer history
// queries. Requires a GORM database connection for query execution.
func NewCustomerHistoryQueryHandler(db *gorm.DB) CustomerHistoryQueryHandler {
	return CustomerHistoryQueryHandler{db: db}
}

// Handle returns every order the customer has placed, newest first. Delivered
// and cancelled orders are included; the customer view keeps them forever.
// Each response carries the actions the customer role may still take, which
// for most statuses is none.
func (h CustomerHistoryQueryHandler) Handle(
	ctx context.Context,
	query CustomerHistoryQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderRows(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, kernel.RoleCustomer,
		query.CustomerID().Bytes())
}
