package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// RequestReworkCommandHandler handles supervisors sending a flagged stage
// back to pending. The stage loses its assignee and recorded timings and
// becomes claimable again.
type RequestReworkCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewRequestReworkCommandHandler creates a handler for rework requests.
func NewRequestReworkCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) RequestReworkCommandHandler {
	return RequestReworkCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the rework request command.
func (h RequestReworkCommandHandler) Handle(ctx context.Context, cmd RequestReworkCommand) error {
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

	if err = aggregate.RequestRework(cmd.Stage(), cmd.Supervisor(), cmd.SupervisorNotes()); err != nil {
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
