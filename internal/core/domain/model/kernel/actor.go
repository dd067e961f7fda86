package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role identifies which kind of marketplace participant an actor is.
// The role decides which order status transitions the actor may request.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and may cancel them before preparation starts.
	RoleCustomer

	// RoleBusiness confirms, prepares, and hands over orders it owns.
	RoleBusiness

	// RoleCourier claims ready orders and carries them to the customer.
	RoleCourier

	// RoleAdmin is read-only over the order core; it performs no transitions.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleBusiness: "business",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role name as it appears on the wire.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is an authenticated identity attempting an operation. Every cart and
// order mutation takes an explicit Actor; nothing reads identity from ambient
// state. The zero value is invalid and fails Validate, which the transport
// layer maps to an unauthorized response.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a validated identity and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsEqual compares actors by identity and role.
func (a Actor) IsEqual(other Actor) bool {
	return a.id.IsEqual(other.id) && a.role == other.role
}

// Validate ensures the actor carries a real identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return a.role.Validate()
}
