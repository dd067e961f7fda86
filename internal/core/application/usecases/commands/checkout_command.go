package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrPaymentMethodIsRequired   = errors.New("payment method is required")
)

// CheckoutCommand represents a request to turn the customer's cart into an
// order: price it, charge the customer, and persist the order with a frozen
// price snapshot.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	deliveryAddress string
	paymentMethod   string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a validated checkout command.
func NewCheckoutCommand(customerID kernel.UUID, deliveryAddress, paymentMethod string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the customer checking out.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryAddress returns where the order should be delivered.
func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// PaymentMethod returns the payment method chosen by the customer.
func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	c.deliveryAddress = address
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(method string) error {
	if method == "" {
		return ErrPaymentMethodIsRequired
	}
	c.paymentMethod = method
	return nil
}
