package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// FlagExceptionCommandHandler handles operators flagging a problem on a
// claimed stage. A flagged order is blocked until a supervisor approves a
// skip or requests rework.
type FlagExceptionCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewFlagExceptionCommandHandler creates a handler for exception flagging
// operations.
func NewFlagExceptionCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) FlagExceptionCommandHandler {
	return FlagExceptionCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the exception flag command.
func (h FlagExceptionCommandHandler) Handle(ctx context.Context, cmd FlagExceptionCommand) error {
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

	if err = aggregate.FlagException(cmd.Stage(), cmd.Assignee(), cmd.ExceptionReason(), cmd.Notes()); err != nil {
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
