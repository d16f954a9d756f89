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

func flaggedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(id, "PO-1002", 5, "")
	require.NoError(t, err)
	require.NoError(t, aggregate.ClaimStage(order.Preparation, "alice"))
	require.NoError(t, aggregate.CompleteStage(order.Preparation, "alice", 10, ""))
	require.NoError(t, aggregate.ClaimStage(order.Assembly, "bob"))
	require.NoError(t, aggregate.FlagException(order.Assembly, "bob", "missing fastener kit", ""))
	return aggregate
}

func TestApproveSkipCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewApproveSkipCommand(id, order.Assembly, "carol", "ship without insert")

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

	h := commands.NewApproveSkipCommandHandler(factory, lock.NewKeyed())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	status, err := aggregate.StageStatusFor(order.Assembly)
	require.NoError(t, err)
	assert.Equal(t, order.Skipped, status.State())
	assert.Equal(t, "carol", status.ApprovedBy())
	// Pipeline moved on past the skipped stage.
	assert.Equal(t, order.Delivery, aggregate.CurrentStage())
	repo.AssertExpectations(t)
}

func TestApproveSkipCommandHandler_Handle_NotFlagged(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewApproveSkipCommand(id, order.Preparation, "carol", "")

	aggregate, err := order.NewOrder(id, "PO-1002", 5, "")
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

	h := commands.NewApproveSkipCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update")
}
