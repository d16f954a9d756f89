package commands

import (
	"context"

	"workflow/internal/pkg/lock"
)

// ClaimStageCommandHandler handles operators claiming the active stage of an
// order. Claims are serialized per order: when two operators race for the
// same stage, exactly one claim succeeds and the other fails with an invalid
// transition error.
//
// Example:
//
//	handler := NewClaimStageCommandHandler(uowFactory, locks)
//	cmd, _ := NewClaimStageCommand(orderID, order.Preparation, "alice")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("claim rejected: %v", err)
//	}
type ClaimStageCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *lock.Keyed
}

// NewClaimStageCommandHandler creates a handler for stage claim operations.
// The keyed lock serializes all mutations of the same order.
func NewClaimStageCommandHandler(uowFactory OrderUoWFactory, locks *lock.Keyed) ClaimStageCommandHandler {
	return ClaimStageCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the stage claim command.
// Loads the order, applies the claim through the aggregate (which enforces
// active-stage gating and the pending precondition), and persists the result.
func (h ClaimStageCommandHandler) Handle(ctx context.Context, cmd ClaimStageCommand) error {
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

	if err = aggregate.ClaimStage(cmd.Stage(), cmd.Assignee()); err != nil {
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
