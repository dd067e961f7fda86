package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a single authoritative transition table consulted both by the
// domain (to enforce transitions) and by read models (to decide which actions
// to offer a role), so the two can never drift.
//
// State transitions:
//
//	created ──> confirmed ──> preparing ──> ready_for_pickup ──> picked_up ──> delivering ──> delivered
//	   │            │             │                                   │
//	   │            │             │                                   └─────────────────────> delivered
//	   └────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal; orders are retained in them for
// history and rating, never deleted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status after a successful checkout.
	StatusCreated

	// StatusConfirmed means the business accepted the order.
	StatusConfirmed

	// StatusPreparing means the kitchen started working on the order.
	// From here the customer can no longer cancel.
	StatusPreparing

	// StatusReadyForPickup means the order is packed and waiting for a
	// courier to claim it.
	StatusReadyForPickup

	// StatusPickedUp means a courier has claimed and collected the order.
	StatusPickedUp

	// StatusDelivering is an optional intermediate marker while the courier
	// is en route.
	StatusDelivering

	// StatusDelivered is a terminal state: the order reached the customer.
	StatusDelivered

	// StatusCancelled is a terminal state reachable from created, confirmed,
	// or preparing only.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusCreated:        "created",
		StatusConfirmed:      "confirmed",
		StatusPreparing:      "preparing",
		StatusReadyForPickup: "ready_for_pickup",
		StatusPickedUp:       "picked_up",
		StatusDelivering:     "delivering",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// StatusFromString parses a status name as it appears on the wire and in the
// database.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// edge is one permitted move in the transition table together with the roles
// allowed to request it. Identity preconditions (order ownership, courier
// claims, the customer cancellation window) are enforced by Order.TransitionTo
// on top of this table.
type edge struct {
	from  Status
	to    Status
	roles []kernel.Role
}

// transitionTable is the single authoritative mapping of
// (current status, actor role) -> permitted next statuses.
func transitionTable() []edge {
	return []edge{
		{StatusCreated, StatusConfirmed, []kernel.Role{kernel.RoleBusiness}},
		{StatusCreated, StatusCancelled, []kernel.Role{kernel.RoleBusiness, kernel.RoleCustomer}},
		{StatusConfirmed, StatusPreparing, []kernel.Role{kernel.RoleBusiness}},
		{StatusConfirmed, StatusCancelled, []kernel.Role{kernel.RoleCustomer}},
		{StatusPreparing, StatusReadyForPickup, []kernel.Role{kernel.RoleBusiness}},
		// Stock-out path: once preparation started only the business may cancel.
		{StatusPreparing, StatusCancelled, []kernel.Role{kernel.RoleBusiness}},
		{StatusReadyForPickup, StatusPickedUp, []kernel.Role{kernel.RoleCourier}},
		{StatusPickedUp, StatusDelivering, []kernel.Role{kernel.RoleCourier}},
		{StatusPickedUp, StatusDelivered, []kernel.Role{kernel.RoleCourier}},
		{StatusDelivering, StatusDelivered, []kernel.Role{kernel.RoleCourier}},
	}
}

// CanTransition reports whether the table contains an edge from s to target
// for the given role.
func (s Status) CanTransition(target Status, role kernel.Role) bool {
	for _, e := range transitionTable() {
		if e.from != s || e.to != target {
			continue
		}
		for _, r := range e.roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

// AllowedNext returns the statuses the given role may move an order in status
// s to. Read models use this to decide which action buttons to offer, so the
// UI and the enforcement path share one table.
func (s Status) AllowedNext(role kernel.Role) []Status {
	var next []Status
	for _, e := range transitionTable() {
		if e.from != s {
			continue
		}
		for _, r := range e.roles {
			if r == role {
				next = append(next, e.to)
				break
			}
		}
	}
	return next
}
