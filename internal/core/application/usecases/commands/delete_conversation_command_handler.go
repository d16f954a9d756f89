package commands

import (
	"context"

	"workflow/internal/pkg/errs"
	"workflow/internal/pkg/lock"
)

// DeleteConversationCommandHandler handles users removing their own
// assistant conversations, messages included.
type DeleteConversationCommandHandler struct {
	uowFactory ConversationUoWFactory
	locks      *lock.Keyed
}

// NewDeleteConversationCommandHandler creates a handler for conversation
// deletion.
func NewDeleteConversationCommandHandler(uowFactory ConversationUoWFactory, locks *lock.Keyed) DeleteConversationCommandHandler {
	return DeleteConversationCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the delete conversation command.
// A conversation owned by another user is reported as not found.
func (h DeleteConversationCommandHandler) Handle(ctx context.Context, cmd DeleteConversationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.locks.Lock(cmd.ConversationID().String())
	defer h.locks.Unlock(cmd.ConversationID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	conversationRepo := uow.ConversationRepository()

	aggregate, err := conversationRepo.Get(ctx, cmd.ConversationID())
	if err != nil {
		return err
	}
	if aggregate.CreatedBy() != cmd.RequestedBy() {
		return errs.NewObjectNotFoundError("conversationId", cmd.ConversationID().String())
	}

	if err = conversationRepo.Delete(ctx, cmd.ConversationID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
