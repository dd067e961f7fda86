package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// PendingForBusinessQueryHandler backs the business dashboard queue.
//
// Example:
//
//	handler := NewPendingForBusinessQueryHandler(db)
//	query, _ := NewPendingForBusinessQuery(businessID)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get pending orders: %v", err)
//	    return err
//	}
type PendingForBusinessQueryHandler struct {
	db *gorm.DB
}

// NewPendingForBusinessQueryHandler creates a handler for the business pending
// queue. Requires a GORM database connection for query execution.
func NewPendingForBusinessQueryHandler(db *gorm.DB) PendingForBusinessQueryHandler {
	return PendingForBusinessQueryHandler{db: db}
}

// Handle returns all orders in "created" status at the query's business,
// oldest first so the kitchen works the queue in arrival order. Each response
// carries the actions the business role may take next.
func (h PendingForBusinessQueryHandler) Handle(
	ctx context.Context,
	query PendingForBusinessQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderRows(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE business_id = ? AND status = ?
		ORDER BY created_at
	`, kernel.RoleBusiness,
		query.BusinessID().Bytes(), order.StatusCreated.String())
}
