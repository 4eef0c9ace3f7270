package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("should round to nearest cent", func(t *testing.T) {
		assert.Equal(t, int64(999), kernel.NewMoneyFromFloat(9.99).Cents())
		assert.Equal(t, int64(1240), kernel.NewMoneyFromFloat(12.40).Cents())
		assert.Equal(t, int64(4000), kernel.NewMoneyFromFloat(40.00).Cents())
	})

	t.Run("should survive binary float noise", func(t *testing.T) {
		// 0.1 + 0.2 is not exactly 0.3 in float64
		assert.Equal(t, int64(30), kernel.NewMoneyFromFloat(0.1+0.2).Cents())
	})
}

func TestMoney_RoundTrip(t *testing.T) {
	t.Run("cent amounts round-trip through Float64 without drift", func(t *testing.T) {
		for _, cents := range []int64{0, 1, 99, 100, 999, 1240, 4599, 123456789} {
			m := kernel.NewMoneyFromCents(cents)
			assert.Equal(t, cents, kernel.NewMoneyFromFloat(m.Float64()).Cents())
		}
	})
}

func TestMoney_Percent(t *testing.T) {
	t.Run("five percent of 40.00 is 2.00", func(t *testing.T) {
		fee := kernel.NewMoneyFromFloat(40.00).Percent(0.05)
		assert.Equal(t, int64(200), fee.Cents())
	})

	t.Run("rounds to the nearest cent", func(t *testing.T) {
		// 12.34 * 0.05 = 0.617 -> 0.62
		fee := kernel.NewMoneyFromFloat(12.34).Percent(0.05)
		assert.Equal(t, int64(62), fee.Cents())
	})
}

func TestMoney_Add(t *testing.T) {
	total := kernel.NewMoneyFromFloat(40.00).
		Add(kernel.NewMoneyFromFloat(3.99)).
		Add(kernel.NewMoneyFromFloat(2.00))
	assert.Equal(t, int64(4599), total.Cents())
	assert.Equal(t, "45.99", total.String())
}

func TestMoney_FloorDollars(t *testing.T) {
	assert.Equal(t, 12, kernel.NewMoneyFromFloat(12.40).FloorDollars())
	assert.Equal(t, 9, kernel.NewMoneyFromFloat(9.99).FloorDollars())
	assert.Equal(t, 45, kernel.NewMoneyFromFloat(45.99).FloorDollars())
	assert.Equal(t, 0, kernel.NewMoneyFromCents(0).FloorDollars())
}

func TestMoney_Validate(t *testing.T) {
	t.Run("non-negative amounts are valid", func(t *testing.T) {
		require.NoError(t, kernel.NewMoneyFromCents(0).Validate())
		require.NoError(t, kernel.NewMoneyFromFloat(3.49).Validate())
	})

	t.Run("negative amounts are invalid", func(t *testing.T) {
		require.Error(t, kernel.NewMoneyFromCents(-1).Validate())
	})
}
