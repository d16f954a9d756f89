package queries

import (
	"context"

	"workflow/internal/core/domain/services"
	"workflow/internal/core/ports"
)

// GetWorkQueueQueryHandler loads all orders and projects them through the
// work queue projector. Filtering and ordering rules live in the domain
// service; this handler only shapes the read model.
type GetWorkQueueQueryHandler struct {
	orderRepo ports.OrderRepository
	projector *services.WorkQueueProjector
}

// NewGetWorkQueueQueryHandler creates a handler for work queue queries.
func NewGetWorkQueueQueryHandler(orderRepo ports.OrderRepository) GetWorkQueueQueryHandler {
	return GetWorkQueueQueryHandler{
		orderRepo: orderRepo,
		projector: services.NewWorkQueueProjector(),
	}
}

// Handle executes the query.
func (h GetWorkQueueQueryHandler) Handle(ctx context.Context, query GetWorkQueueQuery) ([]WorkQueueItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := h.projector.Project(aggregates, services.QueueFilter{
		Stage:    query.Stage(),
		States:   query.States(),
		Assignee: query.Assignee(),
	})

	responses := make([]WorkQueueItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, WorkQueueItemResponse{
			OrderID:         item.Order.ID(),
			OrderNumber:     item.Order.OrderNumber(),
			Priority:        item.Order.Priority(),
			Stage:           item.Status.Stage(),
			State:           item.Status.State(),
			Assignee:        item.Status.Assignee(),
			ClaimedAt:       item.Status.ClaimedAt(),
			ExceptionReason: item.Status.ExceptionReason(),
			OrderCreatedAt:  item.Order.CreatedAt(),
		})
	}

	return responses, nil
}
