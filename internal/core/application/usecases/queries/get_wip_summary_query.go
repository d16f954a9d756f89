package queries

import (
	"errors"

	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

// ErrGetWipSummaryQueryIsNotConstructed is returned when the query was not
// built through its constructor.
var ErrGetWipSummaryQueryIsNotConstructed = errors.New(
	"GetWipSummaryQuery must be created via NewGetWipSummaryQuery constructor",
)

// GetWipSummaryQuery retrieves the supervisor work-in-progress snapshot:
// stage-by-state counts plus order-level totals.
//
// Example:
//
//	query := NewGetWipSummaryQuery()
//	handler := NewGetWipSummaryQueryHandler(orderRepo)
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load WIP summary: %w", err)
//	}
//	fmt.Printf("%d orders, %d blocked\n", summary.TotalOrders, summary.ExceptionOrders)
type GetWipSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWipSummaryQuery creates a WIP summary query.
func NewGetWipSummaryQuery() GetWipSummaryQuery {
	return GetWipSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetWipSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetWipSummaryQueryIsNotConstructed)
}

// StageSummaryResponse holds per-state counts for one pipeline stage.
type StageSummaryResponse struct {
	Stage     order.StageKind
	Pending   int
	Claimed   int
	Exception int
	Completed int
	Skipped   int
}

// WipSummaryResponse is the work-in-progress read model.
type WipSummaryResponse struct {
	TotalOrders     int
	CompletedOrders int
	ExceptionOrders int
	Stages          []StageSummaryResponse
}
