package services

import (
	"sort"
	"time"

	"workflow/internal/core/domain/model/order"
)

// QueueFilter selects stage statuses for the work queue. Zero-value fields
// select everything: a nil Stage matches all stages, an empty States slice
// matches all states, an empty Assignee matches all assignees.
type QueueFilter struct {
	Stage    *order.StageKind
	States   []order.StageState
	Assignee string
}

// WorkQueueItem is one (order, stage status) pair in the projected queue.
type WorkQueueItem struct {
	Order  *order.Order
	Status *order.StageStatus
}

// WorkQueueProjector builds operational work queues from loaded order
// aggregates. It is a pure read projection and never mutates state.
type WorkQueueProjector struct{}

// NewWorkQueueProjector creates a projector.
func NewWorkQueueProjector() *WorkQueueProjector {
	return &WorkQueueProjector{}
}

// Project filters every stage status of every order through the filter and
// returns the matches ordered for dispatch: order priority ascending (lower
// number is more urgent), then the stage's claimedAt (falling back to
// updatedAt) ascending so the oldest-acted-on work surfaces first, then
// order creation time ascending, then order id for determinism.
func (p *WorkQueueProjector) Project(orders []*order.Order, filter QueueFilter) []WorkQueueItem {
	items := make([]WorkQueueItem, 0)
	for _, o := range orders {
		for _, status := range o.Stages() {
			if !matches(status, filter) {
				continue
			}
			items = append(items, WorkQueueItem{Order: o, Status: status})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Order.Priority() != b.Order.Priority() {
			return a.Order.Priority() < b.Order.Priority()
		}
		at, bt := actedOnAt(a.Status), actedOnAt(b.Status)
		if !at.Equal(bt) {
			return at.Before(bt)
		}
		if !a.Order.CreatedAt().Equal(b.Order.CreatedAt()) {
			return a.Order.CreatedAt().Before(b.Order.CreatedAt())
		}
		return a.Order.ID().String() < b.Order.ID().String()
	})

	return items
}

func matches(status *order.StageStatus, filter QueueFilter) bool {
	if filter.Stage != nil && status.Stage() != *filter.Stage {
		return false
	}
	if len(filter.States) > 0 {
		found := false
		for _, state := range filter.States {
			if status.State() == state {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Assignee != "" && status.Assignee() != filter.Assignee {
		return false
	}
	return true
}

func actedOnAt(status *order.StageStatus) time.Time {
	if status.ClaimedAt() != nil {
		return *status.ClaimedAt()
	}
	return status.UpdatedAt()
}
