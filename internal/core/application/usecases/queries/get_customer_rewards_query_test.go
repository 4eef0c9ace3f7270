package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCustomerRewardsQuery(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		q, err := NewGetCustomerRewardsQuery("  Ada@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", q.Email())
	})

	t.Run("rejects blank email", func(t *testing.T) {
		_, err := NewGetCustomerRewardsQuery("   ")
		require.Error(t, err)
	})

	t.Run("zero value fails validate", func(t *testing.T) {
		var q GetCustomerRewardsQuery
		require.ErrorIs(t, q.Validate(), ErrGetCustomerRewardsQueryIsNotConstructed)
	})
}

func TestNewGetAvailableDeliveriesQuery(t *testing.T) {
	q := NewGetAvailableDeliveriesQuery()
	require.NoError(t, q.Validate())

	var zero GetAvailableDeliveriesQuery
	require.ErrorIs(t, zero.Validate(), ErrGetAvailableDeliveriesQueryIsNotConstructed)
}
