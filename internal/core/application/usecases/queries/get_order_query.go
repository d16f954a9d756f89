// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when the query was not built
// through its constructor.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full stage breakdown.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(orderRepo)
//
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order: %w", err)
//	}
//	fmt.Printf("%s is at %s\n", response.OrderNumber, response.CurrentStage)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StageStatusResponse represents one pipeline stage of an order in the read
// model.
type StageStatusResponse struct {
	Stage              order.StageKind
	State              order.StageState
	Assignee           string
	ClaimedAt          *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	ServiceTimeMinutes *int64
	Notes              string
	ExceptionReason    string
	SupervisorNotes    string
	ApprovedBy         string
	UpdatedAt          time.Time
}

// OrderResponse represents a full order in the read model, including the
// derived current stage and overall state.
type OrderResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	Priority     int
	Notes        string
	CurrentStage order.StageKind
	OverallState order.StageState
	Stages       []StageStatusResponse
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func newStageStatusResponse(status *order.StageStatus) StageStatusResponse {
	return StageStatusResponse{
		Stage:              status.Stage(),
		State:              status.State(),
		Assignee:           status.Assignee(),
		ClaimedAt:          status.ClaimedAt(),
		StartedAt:          status.StartedAt(),
		CompletedAt:        status.CompletedAt(),
		ServiceTimeMinutes: status.ServiceTimeMinutes(),
		Notes:              status.Notes(),
		ExceptionReason:    status.ExceptionReason(),
		SupervisorNotes:    status.SupervisorNotes(),
		ApprovedBy:         status.ApprovedBy(),
		UpdatedAt:          status.UpdatedAt(),
	}
}

func newOrderResponse(aggregate *order.Order) OrderResponse {
	stages := make([]StageStatusResponse, 0, len(aggregate.Stages()))
	for _, status := range aggregate.Stages() {
		stages = append(stages, newStageStatusResponse(status))
	}

	return OrderResponse{
		ID:           aggregate.ID(),
		OrderNumber:  aggregate.OrderNumber(),
		Priority:     aggregate.Priority(),
		Notes:        aggregate.Notes(),
		CurrentStage: aggregate.CurrentStage(),
		OverallState: aggregate.OverallState(),
		Stages:       stages,
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}
