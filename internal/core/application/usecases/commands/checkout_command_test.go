package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand_ValidInput(t *testing.T) {
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(customerID, "Ataturk Cad. 12, Kadikoy", "card")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, "Ataturk Cad. 12, Kadikoy", cmd.DeliveryAddress())
	assert.Equal(t, "card", cmd.PaymentMethod())
}

func TestNewCheckoutCommand_EmptyDeliveryAddress(t *testing.T) {
	_, err := commands.NewCheckoutCommand(kernel.NewUUID(), "", "card")

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDeliveryAddressIsRequired)
}

func TestNewCheckoutCommand_EmptyPaymentMethod(t *testing.T) {
	_, err := commands.NewCheckoutCommand(kernel.NewUUID(), "Ataturk Cad. 12, Kadikoy", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPaymentMethodIsRequired)
}

func TestNewCheckoutCommand_InvalidCustomerID(t *testing.T) {
	_, err := commands.NewCheckoutCommand(kernel.UUID{}, "Ataturk Cad. 12, Kadikoy", "card")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCheckoutCommand_NotConstructed(t *testing.T) {
	var cmd commands.CheckoutCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
}
