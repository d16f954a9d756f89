package commands_test

import (
	"context"
	"sync"
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/core/ports"
	"workflow/internal/pkg/errs"
	"workflow/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewClaimStageCommand(id, order.Preparation, "alice")

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)

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

	h := commands.NewClaimStageCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	status, err := aggregate.StageStatusFor(order.Preparation)
	require.NoError(t, err)
	assert.Equal(t, order.Claimed, status.State())
	assert.Equal(t, "alice", status.Assignee())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClaimStageCommandHandler_Handle_NotActiveStage(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewClaimStageCommand(id, order.Assembly, "alice")

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

	h := commands.NewClaimStageCommandHandler(factory, lock.NewKeyed())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update")
}

func TestClaimStageCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewClaimStageCommand(id, order.Preparation, "alice")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimStageCommandHandler(factory, lock.NewKeyed())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClaimStageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClaimStageCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewClaimStageCommandHandler(factory, lock.NewKeyed())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrClaimStageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

// In-memory unit of work with no internal locking. Serialization of the
// load-mutate-persist cycle must come from the handler's keyed lock.
type memoryOrderStore struct {
	aggregate *order.Order
}

type memoryOrderUoW struct {
	store *memoryOrderStore
}

func (u *memoryOrderUoW) Begin(context.Context) error    { return nil }
func (u *memoryOrderUoW) Commit(context.Context) error   { return nil }
func (u *memoryOrderUoW) Rollback(context.Context) error { return nil }

func (u *memoryOrderUoW) OrderRepository() ports.OrderRepository {
	return &memoryOrderRepo{store: u.store}
}

type memoryOrderRepo struct {
	store *memoryOrderStore
}

func (r *memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.aggregate = o
	return nil
}

func (r *memoryOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.aggregate = o
	return nil
}

func (r *memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if r.store.aggregate == nil || !r.store.aggregate.ID().IsEqual(id) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return r.store.aggregate, nil
}

func (r *memoryOrderRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*order.Order, error) {
	if r.store.aggregate == nil || r.store.aggregate.OrderNumber() != orderNumber {
		return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
	}
	return r.store.aggregate, nil
}

func (r *memoryOrderRepo) GetAll(context.Context) ([]*order.Order, error) {
	if r.store.aggregate == nil {
		return nil, nil
	}
	return []*order.Order{r.store.aggregate}, nil
}

type memoryOrderUoWFactory struct {
	store *memoryOrderStore
}

func (f *memoryOrderUoWFactory) Create() commands.OrderUoW {
	return &memoryOrderUoW{store: f.store}
}

func TestClaimStageCommandHandler_Handle_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()

	aggregate, err := order.NewOrder(id, "PO-1001", 5, "")
	require.NoError(t, err)

	store := &memoryOrderStore{aggregate: aggregate}
	h := commands.NewClaimStageCommandHandler(&memoryOrderUoWFactory{store: store}, lock.NewKeyed())

	operators := []string{"alice", "bob"}
	results := make([]error, len(operators))

	var wg sync.WaitGroup
	for i, operator := range operators {
		wg.Add(1)
		go func(i int, operator string) {
			defer wg.Done()
			cmd, cmdErr := commands.NewClaimStageCommand(id, order.Preparation, operator)
			require.NoError(t, cmdErr)
			results[i] = h.Handle(ctx, cmd)
		}(i, operator)
	}
	wg.Wait()

	// Exactly one claim wins, the other is rejected as an invalid transition.
	var succeeded, rejected int
	for _, resultErr := range results {
		switch {
		case resultErr == nil:
			succeeded++
		default:
			require.ErrorIs(t, resultErr, errs.ErrInvalidTransition)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	status, err := store.aggregate.StageStatusFor(order.Preparation)
	require.NoError(t, err)
	assert.Equal(t, order.Claimed, status.State())
	assert.Contains(t, operators, status.Assignee())
}
