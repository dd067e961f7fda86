package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerHistoryQuery_Valid(t *testing.T) {
	customerID := kernel.NewUUID()

	query, err := queries.NewCustomerHistoryQuery(customerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, customerID, query.CustomerID())
}

func TestNewCustomerHistoryQuery_InvalidCustomerID(t *testing.T) {
	_, err := queries.NewCustomerHistoryQuery(kernel.UUID{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCustomerHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.CustomerHistoryQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCustomerHistoryQueryIsNotConstructed)
}
