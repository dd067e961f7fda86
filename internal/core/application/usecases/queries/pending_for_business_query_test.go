package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingForBusinessQuery_Valid(t *testing.T) {
	businessID := kernel.NewUUID()

	query, err := queries.NewPendingForBusinessQuery(businessID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, businessID, query.BusinessID())
}

func TestNewPendingForBusinessQuery_InvalidBusinessID(t *testing.T) {
	_, err := queries.NewPendingForBusinessQuery(kernel.UUID{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestPendingForBusinessQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.PendingForBusinessQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrPendingForBusinessQueryIsNotConstructed)
}
