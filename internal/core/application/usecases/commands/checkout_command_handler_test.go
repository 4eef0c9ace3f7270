package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixtureRestaurant(t *testing.T, id kernel.UUID, deliveryFeeCents int64) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.RestoreRestaurant(
		id, "Blue Bay Diner", "8 Harbor Rd",
		kernel.NewMoneyFromCents(deliveryFeeCents), time.Now().UTC(),
	)
	require.NoError(t, err)
	return r
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	items := fixtureItems(t)
	cmd, err := commands.NewCheckoutCommand(orderID, restaurantID, fixtureCustomer(t), items)
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, restaurantID).
			Return(fixtureRestaurant(t, restaurantID, 399), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created := args.Get(1).(*order.Order)
				require.Equal(t, order.Pending, created.Status())
				// 2x15.00 + 2x5.00 = 40.00 subtotal, 5% fee = 2.00, total 45.99
				require.Equal(t, int64(4000), created.Fees().Subtotal().Cents())
				require.Equal(t, int64(200), created.Fees().ServiceFee().Cents())
				require.Equal(t, int64(4599), created.Fees().Total().Cents())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CheckoutCommand{} // not constructed properly
	factory := new(MockCheckoutUoWFactory)
	h := commands.NewCheckoutCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
}

func TestCheckoutCommandHandler_Handle_RestaurantNotFound(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), restaurantID, fixtureCustomer(t), fixtureItems(t))
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, restaurantID).
			Return(nil, errors.New("not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), restaurantID, fixtureCustomer(t), fixtureItems(t))
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, restaurantID).
			Return(fixtureRestaurant(t, restaurantID, 399), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
