package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFees(t *testing.T) {
	t.Run("computes the reference checkout example", func(t *testing.T) {
		// subtotal=40.00, delivery=3.99 -> service=2.00, total=45.99
		fees, err := order.NewFees(kernel.NewMoneyFromFloat(40.00), kernel.NewMoneyFromFloat(3.99))
		require.NoError(t, err)

		assert.Equal(t, int64(4000), fees.Subtotal().Cents())
		assert.Equal(t, int64(399), fees.DeliveryFee().Cents())
		assert.Equal(t, int64(200), fees.ServiceFee().Cents())
		assert.Equal(t, int64(4599), fees.Total().Cents())
	})

	t.Run("rounds the service fee before summing", func(t *testing.T) {
		// 12.34 * 0.05 = 0.617 -> service fee 0.62, total 12.34 + 2.49 + 0.62
		fees, err := order.NewFees(kernel.NewMoneyFromFloat(12.34), kernel.NewMoneyFromFloat(2.49))
		require.NoError(t, err)

		assert.Equal(t, int64(62), fees.ServiceFee().Cents())
		assert.Equal(t, int64(1234+249+62), fees.Total().Cents())
	})

	t.Run("rejects negative inputs", func(t *testing.T) {
		_, err := order.NewFees(kernel.NewMoneyFromCents(-1), kernel.NewMoneyFromCents(0))
		require.Error(t, err)

		_, err = order.NewFees(kernel.NewMoneyFromCents(100), kernel.NewMoneyFromCents(-1))
		require.Error(t, err)
	})
}

func TestRestoreFees(t *testing.T) {
	t.Run("accepts a consistent snapshot", func(t *testing.T) {
		fees, err := order.RestoreFees(
			kernel.NewMoneyFromFloat(40.00),
			kernel.NewMoneyFromFloat(3.99),
			kernel.NewMoneyFromFloat(2.00),
			kernel.NewMoneyFromFloat(45.99),
		)
		require.NoError(t, err)
		require.NoError(t, fees.Validate())
	})

	t.Run("rejects a total that does not equal the sum of its parts", func(t *testing.T) {
		_, err := order.RestoreFees(
			kernel.NewMoneyFromFloat(40.00),
			kernel.NewMoneyFromFloat(3.99),
			kernel.NewMoneyFromFloat(2.00),
			kernel.NewMoneyFromFloat(46.00),
		)
		require.Error(t, err)
	})
}

func TestFees_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var fees order.Fees
		require.ErrorIs(t, fees.Validate(), order.ErrFeesAreNotConstructed)
	})
}
