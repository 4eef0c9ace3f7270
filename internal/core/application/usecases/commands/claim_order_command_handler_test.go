package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, riderID, "Max Reyes", "+15550000042")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	orderRepo := new(MockOrderRepository)
	riderUoW := new(MockUoW)
	claimUoW := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)
	mock.InOrder(
		// Rider record committed first, in its own transaction.
		riderUoW.On("Begin", ctx).Return(nil).Once(),
		riderUoW.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", mock.Anything, mock.AnythingOfType("*rider.Rider")).Return(nil).Once(),
		riderUoW.On("Commit", ctx).Return(nil).Once(),
		riderUoW.On("Rollback", ctx).Return(nil).Once(),
		// Then the conditional claim.
		claimUoW.On("Begin", ctx).Return(nil).Once(),
		claimUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(fixtureOrder(t, orderID, order.Ready), nil).Once(),
		orderRepo.On("Claim", mock.Anything, orderID, riderID).Return(nil).Once(),
		claimUoW.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("OrderClaimed", mock.Anything, mock.AnythingOfType("*order.Order"), "Max Reyes").
			Return(nil).Once(),
		claimUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(riderUoW).Once()
	factory.On("Create").Return(claimUoW).Once()

	h := commands.NewClaimOrderCommandHandler(factory, dispatcher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	riderRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, riderID, "Max Reyes", "+15550000042")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	orderRepo := new(MockOrderRepository)
	riderUoW := new(MockUoW)
	claimUoW := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)
	mock.InOrder(
		riderUoW.On("Begin", ctx).Return(nil).Once(),
		riderUoW.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", mock.Anything, mock.AnythingOfType("*rider.Rider")).Return(nil).Once(),
		riderUoW.On("Commit", ctx).Return(nil).Once(),
		riderUoW.On("Rollback", ctx).Return(nil).Once(),
		claimUoW.On("Begin", ctx).Return(nil).Once(),
		claimUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(fixtureOrder(t, orderID, order.Ready), nil).Once(),
		// Another rider won between the read and the write.
		orderRepo.On("Claim", mock.Anything, orderID, riderID).
			Return(errs.NewConditionNotMetError("order status", orderID)).Once(),
		claimUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(riderUoW).Once()
	factory.On("Create").Return(claimUoW).Once()

	h := commands.NewClaimOrderCommandHandler(factory, dispatcher, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrClaimConflict)
	// The loser's rider record stays behind; that is part of the contract.
	riderRepo.AssertExpectations(t)
	dispatcher.AssertNotCalled(t, "OrderClaimed", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_OrderNotReady(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, riderID, "Max Reyes", "+15550000042")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	orderRepo := new(MockOrderRepository)
	riderUoW := new(MockUoW)
	claimUoW := new(MockUoW)
	dispatcher := new(MockNotificationDispatcher)
	mock.InOrder(
		riderUoW.On("Begin", ctx).Return(nil).Once(),
		riderUoW.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", mock.Anything, mock.AnythingOfType("*rider.Rider")).Return(nil).Once(),
		riderUoW.On("Commit", ctx).Return(nil).Once(),
		riderUoW.On("Rollback", ctx).Return(nil).Once(),
		claimUoW.On("Begin", ctx).Return(nil).Once(),
		claimUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(fixtureOrder(t, orderID, order.Pending), nil).Once(),
		claimUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(riderUoW).Once()
	factory.On("Create").Return(claimUoW).Once()

	h := commands.NewClaimOrderCommandHandler(factory, dispatcher, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrClaimConflict)
	orderRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_MissingContactNeverWritesRider(t *testing.T) {
	_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "", "+15550000042")
	require.Error(t, err)

	_, err = commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "Max Reyes", "  ")
	require.Error(t, err)

	// An unconstructed command fails validation before any factory use.
	factory := new(MockClaimUoWFactory)
	h := commands.NewClaimOrderCommandHandler(factory, new(MockNotificationDispatcher), discardLogger())
	require.Error(t, h.Handle(t.Context(), commands.ClaimOrderCommand{}))
	factory.AssertNotCalled(t, "Create")
}

func TestClaimOrderCommandHandler_Handle_RiderAddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Max Reyes", "+15550000042")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	riderUoW := new(MockUoW)
	mock.InOrder(
		riderUoW.On("Begin", ctx).Return(nil).Once(),
		riderUoW.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", mock.Anything, mock.AnythingOfType("*rider.Rider")).
			Return(errors.New("insert failed")).Once(),
		riderUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(riderUoW).Once()

	h := commands.NewClaimOrderCommandHandler(factory, new(MockNotificationDispatcher), discardLogger())
	require.Error(t, h.Handle(ctx, cmd))
	riderUoW.AssertExpectations(t)
}
