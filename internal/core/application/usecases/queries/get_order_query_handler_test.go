package queries_test

import (
	"context"
	"testing"

	"workflow/internal/core/application/usecases/queries"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
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

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func TestGetOrderQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	aggregate, err := order.NewOrder(id, "PO-1001", 3, "rush customer")
	require.NoError(t, err)
	require.NoError(t, aggregate.ClaimStage(order.Preparation, "alice"))

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, id).Return(aggregate, nil).Once()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo)
	response, err := h.Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, id, response.ID)
	assert.Equal(t, "PO-1001", response.OrderNumber)
	assert.Equal(t, 3, response.Priority)
	assert.Equal(t, order.Preparation, response.CurrentStage)
	assert.Equal(t, order.Claimed, response.OverallState)
	require.Len(t, response.Stages, 3)
	assert.Equal(t, order.Preparation, response.Stages[0].Stage)
	assert.Equal(t, "alice", response.Stages[0].Assignee)
	assert.NotNil(t, response.Stages[0].ClaimedAt)
	assert.Equal(t, order.Pending, response.Stages[1].State)
	repo.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id.String())).Once()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo)
	_, err = h.Handle(ctx, query)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOrderRepository)

	h := queries.NewGetOrderQueryHandler(repo)
	_, err := h.Handle(ctx, queries.GetOrderQuery{})
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	repo.AssertNotCalled(t, "Get")
}
