package queries

import (
	"context"
	"sort"

	"workflow/internal/core/ports"
)

// GetAllOrdersQueryHandler retrieves every order, sorted the same way the
// work queue is: priority first, then age, then ID for a stable order.
type GetAllOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetAllOrdersQueryHandler creates a handler for order list queries.
func NewGetAllOrdersQueryHandler(orderRepo ports.OrderRepository) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle executes the query.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(aggregates, func(i, j int) bool {
		left, right := aggregates[i], aggregates[j]
		if left.Priority() != right.Priority() {
			return left.Priority() < right.Priority()
		}
		if !left.CreatedAt().Equal(right.CreatedAt()) {
			return left.CreatedAt().Before(right.CreatedAt())
		}
		return left.ID().String() < right.ID().String()
	})

	responses := make([]OrderResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, newOrderResponse(aggregate))
	}

	return responses, nil
}
