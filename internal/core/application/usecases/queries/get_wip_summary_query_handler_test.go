package queries_test

import (
	"errors"
	"testing"

	"workflow/internal/core/application/usecases/queries"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWipSummaryQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	fresh, err := order.NewOrder(kernel.NewUUID(), "PO-2001", order.DefaultPriority, "")
	require.NoError(t, err)

	blocked, err := order.NewOrder(kernel.NewUUID(), "PO-2002", order.DefaultPriority, "")
	require.NoError(t, err)
	require.NoError(t, blocked.ClaimStage(order.Preparation, "alice"))
	require.NoError(t, blocked.FlagException(order.Preparation, "alice", "damaged goods", ""))

	repo := new(MockOrderRepository)
	repo.On("GetAll", ctx).Return([]*order.Order{fresh, blocked}, nil).Once()

	h := queries.NewGetWipSummaryQueryHandler(repo)
	response, err := h.Handle(ctx, queries.NewGetWipSummaryQuery())
	require.NoError(t, err)

	assert.Equal(t, 2, response.TotalOrders)
	assert.Equal(t, 0, response.CompletedOrders)
	assert.Equal(t, 1, response.ExceptionOrders)
	require.Len(t, response.Stages, 3)
	assert.Equal(t, order.Preparation, response.Stages[0].Stage)
	assert.Equal(t, 1, response.Stages[0].Pending)
	assert.Equal(t, 1, response.Stages[0].Exception)
	assert.Equal(t, 2, response.Stages[1].Pending)
	repo.AssertExpectations(t)
}

func TestGetWipSummaryQueryHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()

	repoErr := errors.New("connection lost")
	repo := new(MockOrderRepository)
	repo.On("GetAll", ctx).Return(nil, repoErr).Once()

	h := queries.NewGetWipSummaryQueryHandler(repo)
	_, err := h.Handle(ctx, queries.NewGetWipSummaryQuery())
	assert.ErrorIs(t, err, repoErr)
}

func TestGetWipSummaryQueryHandler_Handle_UnconstructedQuery(t *testing.T) {
	h := queries.NewGetWipSummaryQueryHandler(new(MockOrderRepository))
	_, err := h.Handle(t.Context(), queries.GetWipSummaryQuery{})
	assert.ErrorIs(t, err, queries.ErrGetWipSummaryQueryIsNotConstructed)
}
