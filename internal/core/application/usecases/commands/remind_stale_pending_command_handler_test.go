package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemindStalePendingCommandHandler_Handle_AlertsOncePerOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemindStalePendingCommand(15 * time.Minute)
	require.NoError(t, err)

	stale := fixtureOrder(t, kernel.NewUUID(), order.Pending)

	repo := new(MockOrderRepository)
	repo.On("GetStalePending", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{stale}, nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)

	dispatcher := new(MockNotificationDispatcher)
	dispatcher.On("OrderStuckPending", mock.Anything, stale).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewRemindStalePendingCommandHandler(factory, dispatcher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	// Second sweep finds the same order but must not re-alert.
	require.NoError(t, h.Handle(ctx, cmd))
	dispatcher.AssertExpectations(t)
}

func TestRemindStalePendingCommandHandler_Handle_FailedAlertRetriesNextSweep(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemindStalePendingCommand(15 * time.Minute)
	require.NoError(t, err)

	stale := fixtureOrder(t, kernel.NewUUID(), order.Pending)

	repo := new(MockOrderRepository)
	repo.On("GetStalePending", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{stale}, nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)

	dispatcher := new(MockNotificationDispatcher)
	dispatcher.On("OrderStuckPending", mock.Anything, stale).
		Return(errors.New("amqp down")).Once()
	dispatcher.On("OrderStuckPending", mock.Anything, stale).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewRemindStalePendingCommandHandler(factory, dispatcher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.NoError(t, h.Handle(ctx, cmd))
	dispatcher.AssertExpectations(t)
}

func TestRemindStalePendingCommand_InvalidThreshold(t *testing.T) {
	_, err := commands.NewRemindStalePendingCommand(0)
	require.Error(t, err)

	_, err = commands.NewRemindStalePendingCommand(-time.Minute)
	require.Error(t, err)
}
