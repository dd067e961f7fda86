package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrApplyCouponCommandIsNotConstructed = errors.New(
		"ApplyCouponCommand must be created via NewApplyCouponCommand constructor",
	)
	ErrCouponCodeIsRequired = errors.New("coupon code is required")
)

// ApplyCouponCommand represents a request to apply a coupon code to the
// customer's cart.
type ApplyCouponCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewApplyCouponCommand creates a validated coupon application command.
func NewApplyCouponCommand(customerID kernel.UUID, code string) (ApplyCouponCommand, error) {
	cmd := ApplyCouponCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setCode(code),
	); err != nil {
		return ApplyCouponCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCouponCommand) Validate() error {
	return c.guard.Validate(ErrApplyCouponCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c ApplyCouponCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Code returns the coupon code to resolve and apply.
func (c ApplyCouponCommand) Code() string {
	return c.code
}

func (c *ApplyCouponCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *ApplyCouponCommand) setCode(code string) error {
	if code == "" {
		return ErrCouponCodeIsRequired
	}
	c.code = code
	return nil
}
