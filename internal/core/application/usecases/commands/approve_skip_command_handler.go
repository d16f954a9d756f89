package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// ApproveSkipCommandHandler handles supervisors resolving a flagged stage by
// skipping it. A skipped stage counts as done for pipeline progression, so
// the order advances to the next stage (or completes).
type ApproveSkipCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewApproveSkipCommandHandler creates a handler for skip approval
// operations.
func NewApproveSkipCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) ApproveSkipCommandHandler {
	return ApproveSkipCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the skip approval command.
func (h ApproveSkipCommandHandler) Handle(ctx context.Context, cmd ApproveSkipCommand) error {
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

	if err = aggregate.ApproveSkip(cmd.Stage(), cmd.Supervisor(), cmd.SupervisorNotes()); err != nil {
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
