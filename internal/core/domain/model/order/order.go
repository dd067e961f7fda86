package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIllegalTransition is returned when the requested edge does not exist
	// in the transition table for the order's current status and the actor's
	// role. A stale client acting on an already-moved order lands here.
	ErrIllegalTransition = errors.New("status transition is not allowed")

	// ErrActorForbidden is returned when the role is allowed but the identity
	// is wrong: another business's order, another courier's delivery, or
	// another customer's cancellation.
	ErrActorForbidden = errors.New("actor may not act on this order")

	// ErrCourierConflict is returned when a courier tries to claim an order
	// already claimed by a different courier. The claim is never silently
	// overwritten.
	ErrCourierConflict = errors.New("order is already claimed by another courier")

	// ErrStatusConflict is returned by the persistence layer when a
	// conditional status update affected no rows: another actor moved the
	// order first. Exactly one of two racing transitions succeeds.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// Order is the durable aggregate created from a priced cart at checkout.
// It owns the status state machine and the immutable price snapshot.
//
// Invariants:
//   - items and priceSnapshot are frozen at creation; no later catalog or
//     coupon change alters them
//   - status only moves along transitionTable edges, through TransitionTo
//   - statusHistory is append-only with monotonically increasing timestamps
//   - terminal orders (delivered, cancelled) are retained, never deleted
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	businessID      kernel.UUID
	courierID       *kernel.UUID
	items           []Item
	priceSnapshot   PriceBreakdown
	status          Status
	history         []HistoryEntry
	deliveryAddress string
	paymentMethod   string
	paymentRef      string
	createdAt       time.Time
	confirmedAt     *time.Time

	isConstructed bool
}

// NewOrder creates an order in created status from a successful checkout.
// The price snapshot is frozen here; the initial history entry records the
// customer who placed the order.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	businessID kernel.UUID,
	items []Item,
	priceSnapshot PriceBreakdown,
	deliveryAddress string,
	paymentMethod string,
	paymentRef string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusCreated,
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setBusinessID(businessID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.priceSnapshot = priceSnapshot
	o.paymentRef = paymentRef

	customer, err := kernel.NewActor(customerID, kernel.RoleCustomer)
	if err != nil {
		return nil, err
	}
	entry, err := NewHistoryEntry(StatusCreated, customer, createdAt)
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{entry}

	return o, nil
}

// RestoreOrder rehydrates an order from persistence in whatever status it
// was stored with. History is trusted as stored.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	businessID kernel.UUID,
	courierID *kernel.UUID,
	items []Item,
	priceSnapshot PriceBreakdown,
	status Status,
	history []HistoryEntry,
	deliveryAddress string,
	paymentMethod string,
	paymentRef string,
	createdAt time.Time,
	confirmedAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, customerID, businessID, items, priceSnapshot,
		deliveryAddress, paymentMethod, paymentRef, createdAt)
	if err != nil {
		return nil, err
	}

	o.courierID = courierID
	o.status = status
	o.history = history
	o.confirmedAt = confirmedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// BusinessID returns the restaurant fulfilling the order.
func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// CourierID returns the claiming courier, or nil while unclaimed.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Items returns a copy of the frozen order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// PriceSnapshot returns the breakdown frozen at checkout.
func (o *Order) PriceSnapshot() PriceBreakdown {
	return o.priceSnapshot
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// DeliveryAddress returns where the order is delivered.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// PaymentMethod returns the method the customer paid with.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// PaymentRef returns the gateway reference from the successful charge.
func (o *Order) PaymentRef() string {
	return o.paymentRef
}

// CreatedAt returns when checkout succeeded.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ConfirmedAt returns when the business confirmed the order, or nil.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// TransitionTo moves the order to the requested status on behalf of an actor.
//
// It enforces, in this sequence:
//   - a courier picking up an unclaimed order claims it; a second courier
//     attempting the same claim gets ErrCourierConflict, never an overwrite
//   - the edge exists in the transition table for the current status and the
//     actor's role (ErrIllegalTransition otherwise)
//   - the actor's identity matches the order: businesses act only on their
//     own orders, customers only on theirs, couriers only on deliveries they
//     claimed (ErrActorForbidden)
//
// On success the status changes, created->confirmed binds confirmedAt, and a
// history entry is appended.
func (o *Order) TransitionTo(to Status, actor kernel.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	// A second courier's claim surfaces as a conflict, not as a missing
	// edge: once the order is claimed, picked_up is no longer in the table.
	if actor.Role() == kernel.RoleCourier && to == StatusPickedUp &&
		o.courierID != nil && !actor.ID().IsEqual(*o.courierID) {
		return ErrCourierConflict
	}

	if !o.status.CanTransition(to, actor.Role()) {
		return fmt.Errorf("%w: %s -> %s as %s",
			ErrIllegalTransition, o.status, to, actor.Role())
	}

	if err := o.checkActorIdentity(to, actor); err != nil {
		return err
	}

	entry, err := NewHistoryEntry(to, actor, now)
	if err != nil {
		return err
	}

	if actor.Role() == kernel.RoleCourier && to == StatusPickedUp && o.courierID == nil {
		id := actor.ID()
		o.courierID = &id
	}
	if o.status == StatusCreated && to == StatusConfirmed {
		confirmedAt := now
		o.confirmedAt = &confirmedAt
	}

	o.status = to
	o.history = append(o.history, entry)
	return nil
}

func (o *Order) checkActorIdentity(to Status, actor kernel.Actor) error {
	switch actor.Role() {
	case kernel.RoleBusiness:
		if !actor.ID().IsEqual(o.businessID) {
			return fmt.Errorf("%w: order belongs to another business", ErrActorForbidden)
		}
	case kernel.RoleCustomer:
		if !actor.ID().IsEqual(o.customerID) {
			return fmt.Errorf("%w: order belongs to another customer", ErrActorForbidden)
		}
	case kernel.RoleCourier:
		if o.courierID == nil {
			// Only the claim edge is open to an unassigned courier.
			if to != StatusPickedUp {
				return fmt.Errorf("%w: order has no assigned courier", ErrActorForbidden)
			}
			return nil
		}
		if !actor.ID().IsEqual(*o.courierID) {
			return fmt.Errorf("%w: order is assigned to another courier", ErrActorForbidden)
		}
	default:
		return fmt.Errorf("%w: role %s performs no transitions", ErrActorForbidden, actor.Role())
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}
	o.businessID = businessID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	o.paymentMethod = method
	return nil
}
