package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCustomerHistoryQueryIsNotConstructed = errors.New(
		"CustomerHistoryQuery must be created via NewCustomerHistoryQuery constructor",
	)
)

// CustomerHistoryQuery retrieves a customer's orders, active and past.
// Terminal orders stay visible here for reordering and rating.
type CustomerHistoryQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCustomerHistoryQuery creates a query for the given customer's order
// history.
func NewCustomerHistoryQuery(customerID kernel.UUID) (CustomerHistoryQuery, error) {
	if err := customerID.Validate(); err != nil {
		return CustomerHistoryQuery{}, err
	}

	return CustomerHistoryQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// CustomerID returns the identifier of the customer whose history is
// requested.
func (q CustomerHistoryQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrCustomerHistoryQueryIsNotConstructed if validation fails.
func (q CustomerHistoryQuery) Validate() error {
	return q.guard.Validate(ErrCustomerHistoryQueryIsNotConstructed)
}
