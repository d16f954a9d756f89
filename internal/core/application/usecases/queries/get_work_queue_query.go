package queries

import (
	"errors"
	"time"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

// ErrGetWorkQueueQueryIsNotConstructed is returned when the query was not
// built through its constructor.
var ErrGetWorkQueueQueryIsNotConstructed = errors.New(
	"GetWorkQueueQuery must be created via NewGetWorkQueueQuery constructor",
)

// GetWorkQueueQuery retrieves the operator work queue: one row per matching
// (order, stage) pair, most urgent first. All filters are optional.
//
// Example:
//
//	stage := order.Assembly
//	query, _ := NewGetWorkQueueQuery(&stage, []order.StageState{order.Pending}, "")
//	handler := NewGetWorkQueueQueryHandler(orderRepo)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load work queue: %w", err)
//	}
type GetWorkQueueQuery struct {
	stage    *order.StageKind
	states   []order.StageState
	assignee string

	guard guard.ConstructorGuard
}

// NewGetWorkQueueQuery creates a work queue query. A nil stage matches all
// stages, an empty state list matches all states, an empty assignee matches
// all assignees.
func NewGetWorkQueueQuery(stage *order.StageKind, states []order.StageState, assignee string) (GetWorkQueueQuery, error) {
	if stage != nil {
		if err := stage.Validate(); err != nil {
			return GetWorkQueueQuery{}, err
		}
	}
	for _, state := range states {
		if err := state.Validate(); err != nil {
			return GetWorkQueueQuery{}, err
		}
	}

	return GetWorkQueueQuery{
		stage:    stage,
		states:   states,
		assignee: assignee,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkQueueQueryIsNotConstructed)
}

// Stage returns the stage filter, nil meaning all stages.
func (q GetWorkQueueQuery) Stage() *order.StageKind {
	return q.stage
}

// States returns the state filter, empty meaning all states.
func (q GetWorkQueueQuery) States() []order.StageState {
	return q.states
}

// Assignee returns the assignee filter, empty meaning all assignees.
func (q GetWorkQueueQuery) Assignee() string {
	return q.assignee
}

// WorkQueueItemResponse is one row of the operator work queue.
type WorkQueueItemResponse struct {
	OrderID         kernel.UUID
	OrderNumber     string
	Priority        int
	Stage           order.StageKind
	State           order.StageState
	Assignee        string
	ClaimedAt       *time.Time
	ExceptionReason string
	OrderCreatedAt  time.Time
}
