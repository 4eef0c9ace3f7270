package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusIf(ctx context.Context, id kernel.UUID, from, to order.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockOrderRepository) Claim(ctx context.Context, id, riderID kernel.UUID) error {
	args := m.Called(ctx, id, riderID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllForCustomer(ctx context.Context, email string) ([]*order.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, olderThan time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockClaimUoWFactory struct{ mock.Mock }

func (m *MockClaimUoWFactory) Create() commands.ClaimUoW {
	args := m.Called()
	return args.Get(0).(commands.ClaimUoW)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) OrderConfirmed(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) OrderClaimed(ctx context.Context, o *order.Order, riderName string) error {
	args := m.Called(ctx, o, riderName)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) OrderDelivered(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) OrderStuckPending(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func fixtureCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Ada Lau", "ada@example.com", "+15550000001", "12 Cherry Ln")
	require.NoError(t, err)
	return c
}

func fixtureItems(t *testing.T) []order.LineItem {
	t.Helper()
	burger, err := order.NewLineItem("itm-1", "Burger", kernel.NewMoneyFromCents(1500), 2)
	require.NoError(t, err)
	fries, err := order.NewLineItem("itm-2", "Fries", kernel.NewMoneyFromCents(500), 2)
	require.NoError(t, err)
	return []order.LineItem{burger, fries}
}

// fixtureOrder builds an order in the given status with a rider attached for
// claimed and delivered states.
func fixtureOrder(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	items := fixtureItems(t)
	fees, err := order.NewFees(order.SubtotalOf(items), kernel.NewMoneyFromCents(399))
	require.NoError(t, err)

	var riderID *kernel.UUID
	if status == order.Claimed || status == order.Delivered {
		rID := kernel.NewUUID()
		riderID = &rID
	}

	o, err := order.RestoreOrder(
		id, kernel.NewUUID(), fixtureCustomer(t), items, fees,
		status, riderID, time.Now().UTC().Add(-10*time.Minute),
	)
	require.NoError(t, err)
	return o
}
