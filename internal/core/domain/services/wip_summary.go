package services

import (
	"workflow/internal/core/domain/model/order"
)

// StageSummary holds work-in-progress counts for one pipeline stage.
type StageSummary struct {
	Stage     order.StageKind
	Pending   int
	Claimed   int
	Exception int
	Completed int
	Skipped   int
}

// WipSummary is the shop-floor work-in-progress snapshot: per-stage counts
// plus order-level totals.
type WipSummary struct {
	TotalOrders     int
	CompletedOrders int
	ExceptionOrders int
	Stages          []StageSummary
}

// SummarizeWip computes the WIP snapshot from loaded orders. Pure function;
// stage summaries come back in pipeline order.
func SummarizeWip(orders []*order.Order) WipSummary {
	byStage := make(map[order.StageKind]*StageSummary, len(order.Pipeline()))
	summary := WipSummary{TotalOrders: len(orders)}

	for _, stage := range order.Pipeline() {
		byStage[stage] = &StageSummary{Stage: stage}
	}

	for _, o := range orders {
		switch o.OverallState() {
		case order.Completed:
			summary.CompletedOrders++
		case order.Exception:
			summary.ExceptionOrders++
		}

		for _, status := range o.Stages() {
			s := byStage[status.Stage()]
			switch status.State() {
			case order.Pending:
				s.Pending++
			case order.Claimed:
				s.Claimed++
			case order.Exception:
				s.Exception++
			case order.Completed:
				s.Completed++
			case order.Skipped:
				s.Skipped++
			}
		}
	}

	for _, stage := range order.Pipeline() {
		summary.Stages = append(summary.Stages, *byStage[stage])
	}
	return summary
}
