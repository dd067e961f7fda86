package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPendingForBusinessQueryIsNotConstructed = errors.New(
		"PendingForBusinessQuery must be created via NewPendingForBusinessQuery constructor",
	)
)

// PendingForBusinessQuery retrieves freshly created orders awaiting a decision
// by one business. The business dashboard polls this to confirm or reject
// incoming orders.
//
// Example:
//
//	query, err := NewPendingForBusinessQuery(businessID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending orders: %w", err)
//	}
type PendingForBusinessQuery struct {
	businessID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPendingForBusinessQuery creates a query for orders pending at the given
// business.
func NewPendingForBusinessQuery(businessID kernel.UUID) (PendingForBusinessQuery, error) {
	if err := businessID.Validate(); err != nil {
		return PendingForBusinessQuery{}, err
	}

	return PendingForBusinessQuery{
		businessID: businessID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// BusinessID returns the identifier of the business whose queue is requested.
func (q PendingForBusinessQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// Validate ensures the query was created through the constructor.
// Returns ErrPendingForBusinessQueryIsNotConstructed if validation fails.
func (q PendingForBusinessQuery) Validate() error {
	return q.guard.Validate(ErrPendingForBusinessQueryIsNotConstructed)
}
