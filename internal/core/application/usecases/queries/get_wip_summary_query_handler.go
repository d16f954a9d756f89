package queries

import (
	"context"

	"workflow/internal/core/domain/services"
	"workflow/internal/core/ports"
)

// GetWipSummaryQueryHandler loads all orders and folds them into the WIP
// snapshot. Counting rules live in the domain service; this handler only
// shapes the read model.
type GetWipSummaryQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetWipSummaryQueryHandler creates a handler for WIP summary queries.
func NewGetWipSummaryQueryHandler(orderRepo ports.OrderRepository) GetWipSummaryQueryHandler {
	return GetWipSummaryQueryHandler{orderRepo: orderRepo}
}

// Handle executes the query. Stage summaries come back in pipeline order and
// are present even when a stage has no work yet.
func (h GetWipSummaryQueryHandler) Handle(ctx context.Context, query GetWipSummaryQuery) (WipSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return WipSummaryResponse{}, err
	}

	aggregates, err := h.orderRepo.GetAll(ctx)
	if err != nil {
		return WipSummaryResponse{}, err
	}

	summary := services.SummarizeWip(aggregates)

	response := WipSummaryResponse{
		TotalOrders:     summary.TotalOrders,
		CompletedOrders: summary.CompletedOrders,
		ExceptionOrders: summary.ExceptionOrders,
		Stages:          make([]StageSummaryResponse, 0, len(summary.Stages)),
	}
	for _, stage := range summary.Stages {
		response.Stages = append(response.Stages, StageSummaryResponse{
			Stage:     stage.Stage,
			Pending:   stage.Pending,
			Claimed:   stage.Claimed,
			Exception: stage.Exception,
			Completed: stage.Completed,
			Skipped:   stage.Skipped,
		})
	}

	return response, nil
}
