package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// UpdatePriorityCommandHandler handles priority changes on existing orders.
type UpdatePriorityCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewUpdatePriorityCommandHandler creates a handler for priority updates.
func NewUpdatePriorityCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) UpdatePriorityCommandHandler {
	return UpdatePriorityCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the priority update command.
func (h UpdatePriorityCommandHandler) Handle(ctx context.Context, cmd UpdatePriorityCommand) error {
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

	if err = aggregate.ChangePriority(cmd.Priority()); err != nil {
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
