package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrActiveForCourierQueryIsNotConstructed = errors.New(
		"ActiveForCourierQuery must be created via NewActiveForCourierQuery constructor",
	)
)

// ActiveForCourierQuery retrieves the courier's working set: unclaimed orders
// ready for pickup plus deliveries the courier already carries. The courier
// dashboard polls this to offer pickups and track in-flight deliveries.
type ActiveForCourierQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewActiveForCourierQuery creates a query for the given courier's working set.
func NewActiveForCourierQuery(courierID kernel.UUID) (ActiveForCourierQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ActiveForCourierQuery{}, err
	}

	return ActiveForCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the identifier of the courier whose working set is
// requested.
func (q ActiveForCourierQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
// Returns ErrActiveForCourierQueryIsNotConstructed if validation fails.
func (q ActiveForCourierQuery) Validate() error {
	return q.guard.Validate(ErrActiveForCourierQueryIsNotConstructed)
}
