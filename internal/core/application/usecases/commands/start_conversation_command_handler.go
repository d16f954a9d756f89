package commands

import (
	"context"

	"workflow/internal/core/domain/model/conversation"
)

// StartConversationCommandHandler handles opening assistant conversations.
type StartConversationCommandHandler struct {
	uowFactory ConversationUoWFactory
}

// NewStartConversationCommandHandler creates a handler for opening
// conversations.
func NewStartConversationCommandHandler(uowFactory ConversationUoWFactory) StartConversationCommandHandler {
	return StartConversationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start conversation command.
func (h StartConversationCommandHandler) Handle(ctx context.Context, cmd StartConversationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := conversation.NewConversation(cmd.ConversationID(), cmd.CreatedBy(), cmd.Title())
	if err != nil {
		return err
	}

	if err = uow.ConversationRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
