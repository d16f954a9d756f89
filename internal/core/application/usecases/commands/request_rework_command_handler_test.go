package commands_test

import (
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestReworkCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewRequestReworkCommand(id, order.Assembly, "carol", "redo with new kit")

	aggregate := flaggedOrder(t, id)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestReworkCommandHandler(factory, lock.NewKeyed())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	status, err := aggregate.StageStatusFor(order.Assembly)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, status.State())
	assert.Empty(t, status.Assignee())
	assert.Equal(t, "carol", status.ApprovedBy())
	// The reworked stage becomes the active stage again.
	assert.Equal(t, order.Assembly, aggregate.CurrentStage())
	repo.AssertExpectations(t)
}

func TestRequestReworkCommandHandler_Handle_CompletedStage(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewRequestReworkCommand(id, order.Preparation, "carol", "wrong items picked")

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)
	require.NoError(t, aggregate.ClaimStage(order.Preparation, "alice"))
	require.NoError(t, aggregate.CompleteStage(order.Preparation, "alice", 10, ""))

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestReworkCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Rework on a completed stage reopens it.
	status, err := aggregate.StageStatusFor(order.Preparation)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, status.State())
	assert.Equal(t, order.Preparation, aggregate.CurrentStage())
}
