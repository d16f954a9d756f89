package commands_test

import (
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/errs"
	"workflow/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteStageCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCompleteStageCommand(id, order.Preparation, "alice", 25, "done")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Preparation, cmd.Stage())
	assert.Equal(t, "alice", cmd.Assignee())
	assert.Equal(t, int64(25), cmd.ServiceTimeMinutes())
	assert.Equal(t, "done", cmd.Notes())
}

func TestNewCompleteStageCommand_NegativeServiceTime(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewCompleteStageCommand(id, order.Preparation, "alice", -1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrServiceTimeIsInvalid)
}

func TestCompleteStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteStageCommand(id, order.Preparation, "alice", 25, "all picked")

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)
	require.NoError(t, aggregate.ClaimStage(order.Preparation, "alice"))

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

	h := commands.NewCompleteStageCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	status, err := aggregate.StageStatusFor(order.Preparation)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, status.State())
	require.NotNil(t, status.ServiceTimeMinutes())
	assert.Equal(t, int64(25), *status.ServiceTimeMinutes())
	assert.Equal(t, order.Assembly, aggregate.CurrentStage())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteStageCommandHandler_Handle_WrongClaimant(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteStageCommand(id, order.Preparation, "bob", 10, "")

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)
	require.NoError(t, aggregate.ClaimStage(order.Preparation, "alice"))

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteStageCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	// Stage is still owned by the original claimant.
	status, statusErr := aggregate.StageStatusFor(order.Preparation)
	require.NoError(t, statusErr)
	assert.Equal(t, order.Claimed, status.State())
	assert.Equal(t, "alice", status.Assignee())
	repo.AssertNotCalled(t, "Update")
}

func TestCompleteStageCommandHandler_Handle_NotClaimed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteStageCommand(id, order.Preparation, "alice", 10, "")

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteStageCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
