package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// CompleteStageCommandHandler handles stage completion. Only the operator
// who claimed the stage may complete it; when the completed stage is the
// last pipeline stage the order as a whole becomes completed.
type CompleteStageCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewCompleteStageCommandHandler creates a handler for stage completion
// operations.
func NewCompleteStageCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) CompleteStageCommandHandler {
	return CompleteStageCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the stage completion command.
// Loads the order, applies the completion through the aggregate (which
// enforces the claimed precondition and the claimant match), and persists
// the result.
func (h CompleteStageCommandHandler) Handle(ctx context.Context, cmd CompleteStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.locks.Lock(cmd.OrderID().String())
	defer h.locks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.CompleteStage(cmd.Stage(), cmd.Assignee(), cmd.ServiceTimeMinutes(), cmd.Notes()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
