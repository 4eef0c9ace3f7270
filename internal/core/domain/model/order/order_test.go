package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Ada Lovelace", "ada@example.com", "(555) 010-1010", "12 B Street, Davis")
	require.NoError(t, err)
	return c
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	burger, err := order.NewLineItem("item-1", "Burger", kernel.NewMoneyFromFloat(12.50), 2)
	require.NoError(t, err)
	fries, err := order.NewLineItem("item-2", "Fries", kernel.NewMoneyFromFloat(5.00), 3)
	require.NoError(t, err)
	return []order.LineItem{burger, fries}
}

func testFees(t *testing.T) order.Fees {
	t.Helper()
	fees, err := order.NewFees(kernel.NewMoneyFromFloat(40.00), kernel.NewMoneyFromFloat(3.99))
	require.NoError(t, err)
	return fees
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order with no rider", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Rider())
		assert.True(t, o.IsActive())
		assert.Equal(t, 0, o.ProgressIndex())
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Second)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t))
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.Customer{}, testItems(t), testFees(t))
		require.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), nil, testFees(t))
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), order.Fees{})
		require.ErrorIs(t, err, order.ErrFeesAreNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is not constructed", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_HappyPathLifecycle(t *testing.T) {
	o := newTestOrder(t)
	riderID := kernel.NewUUID()

	require.NoError(t, o.Confirm())
	assert.Equal(t, order.Confirmed, o.Status())

	require.NoError(t, o.MarkReady())
	assert.Equal(t, order.Ready, o.Status())

	require.NoError(t, o.Claim(riderID))
	assert.Equal(t, order.Claimed, o.Status())
	require.NotNil(t, o.Rider())
	assert.True(t, o.Rider().IsEqual(riderID))

	require.NoError(t, o.Deliver())
	assert.Equal(t, order.Delivered, o.Status())
	assert.False(t, o.IsActive())
	assert.Equal(t, 4, o.ProgressIndex())

	// Rider attachment survives delivery untouched.
	assert.True(t, o.Rider().IsEqual(riderID))
}

func TestOrder_Claim(t *testing.T) {
	t.Run("rejects claims before the order is ready", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.Claim(kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Rider())
	})

	t.Run("rejects an invalid rider id", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.MarkReady())

		require.Error(t, o.Claim(kernel.UUID{}))
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("never reassigns an attached rider", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.MarkReady())

		winner := kernel.NewUUID()
		require.NoError(t, o.Claim(winner))

		err := o.Claim(kernel.NewUUID())
		require.Error(t, err)
		assert.True(t, o.Rider().IsEqual(winner), "rider id must never change once set")
	})
}

func TestOrder_Deliver_Idempotent(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.MarkReady())
	require.NoError(t, o.Claim(kernel.NewUUID()))

	require.NoError(t, o.Deliver())
	// A retried confirmation is a no-op success, not an error.
	require.NoError(t, o.Deliver())
	assert.Equal(t, order.Delivered, o.Status())
}

func TestOrder_Decline(t *testing.T) {
	t.Run("declines a pending order into its own terminal state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Decline())

		assert.Equal(t, order.Declined, o.Status())
		assert.NotEqual(t, order.Delivered, o.Status(), "decline must not reuse the success terminal state")
		assert.False(t, o.IsActive())
		assert.Equal(t, -1, o.ProgressIndex())
	})

	t.Run("cannot decline once confirmed", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		require.ErrorIs(t, o.Decline(), order.ErrInvalidTransition)
	})
}

func TestOrder_FeeSnapshotIsFrozen(t *testing.T) {
	items := testItems(t)
	fees := testFees(t)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), items, fees)
	require.NoError(t, err)

	subtotalBefore := o.Fees().Subtotal()
	totalBefore := o.Fees().Total()

	// Mutating the caller's slice after creation must not affect the order.
	replacement, err := order.NewLineItem("item-9", "Pricier Burger", kernel.NewMoneyFromFloat(99.00), 1)
	require.NoError(t, err)
	items[0] = replacement

	got := o.Items()
	assert.Equal(t, "Burger", got[0].Name())
	assert.Equal(t, subtotalBefore, o.Fees().Subtotal())
	assert.Equal(t, totalBefore, o.Fees().Total())

	// Mutating the returned copy must not affect the order either.
	got[1] = replacement
	assert.Equal(t, "Fries", o.Items()[1].Name())
}

func TestRestoreOrder(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("restores a claimed order with its rider", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t),
			order.Claimed, &riderID, createdAt,
		)
		require.NoError(t, err)

		assert.Equal(t, order.Claimed, o.Status())
		assert.True(t, o.Rider().IsEqual(riderID))
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("rejects a claimed order without a rider", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t),
			order.Claimed, nil, createdAt,
		)
		require.Error(t, err)
	})

	t.Run("rejects a pending order with a rider", func(t *testing.T) {
		riderID := kernel.NewUUID()
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t),
			order.Pending, &riderID, createdAt,
		)
		require.Error(t, err)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), testCustomer(t), testItems(t), testFees(t),
			order.Unknown, nil, createdAt,
		)
		require.Error(t, err)
	})
}

func TestNewCustomer(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		c, err := order.NewCustomer("  Ada  ", " ada@example.com ", " 555 ", " 12 B Street ")
		require.NoError(t, err)
		assert.Equal(t, "Ada", c.Name())
		assert.Equal(t, "ada@example.com", c.Email())
	})

	t.Run("rejects blank required fields", func(t *testing.T) {
		_, err := order.NewCustomer("   ", "ada@example.com", "555", "12 B Street")
		require.Error(t, err)

		_, err = order.NewCustomer("Ada", "", "555", "12 B Street")
		require.Error(t, err)
	})
}

func TestLineItem(t *testing.T) {
	t.Run("computes line totals in cents", func(t *testing.T) {
		li, err := order.NewLineItem("item-1", "Burger", kernel.NewMoneyFromFloat(12.50), 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), li.LineTotal().Cents())
	})

	t.Run("subtotal sums line totals", func(t *testing.T) {
		items := testItems(t) // 2x12.50 + 3x5.00 = 40.00
		assert.Equal(t, int64(4000), order.SubtotalOf(items).Cents())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewLineItem("item-1", "Burger", kernel.NewMoneyFromFloat(12.50), 0)
		require.Error(t, err)
	})
}
