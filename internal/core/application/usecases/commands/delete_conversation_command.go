package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/guard"
)

var (
	ErrDeleteConversationCommandIsNotConstructed = errors.New(
		"DeleteConversationCommand must be created via NewDeleteConversationCommand constructor",
	)
	ErrRequestedByIsRequired = errors.New("requestedBy is required")
)

// DeleteConversationCommand represents a user removing one of their
// assistant conversations.
type DeleteConversationCommand struct { //nolint:recvcheck //using for validation
	conversationID kernel.UUID
	requestedBy    string

	guard guard.ConstructorGuard
}

// NewDeleteConversationCommand creates a command to delete a conversation.
func NewDeleteConversationCommand(conversationID kernel.UUID, requestedBy string) (DeleteConversationCommand, error) {
	deleteCommand := DeleteConversationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deleteCommand.setConversationID(conversationID),
		deleteCommand.setRequestedBy(requestedBy),
	); err != nil {
		return DeleteConversationCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteConversationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteConversationCommandIsNotConstructed)
}

// ConversationID returns the identifier of the conversation to delete.
func (c DeleteConversationCommand) ConversationID() kernel.UUID {
	return c.conversationID
}

// RequestedBy returns the user requesting the deletion.
func (c DeleteConversationCommand) RequestedBy() string {
	return c.requestedBy
}

func (c *DeleteConversationCommand) setConversationID(conversationID kernel.UUID) error {
	if err := conversationID.Validate(); err != nil {
		return err
	}

	c.conversationID = conversationID
	return nil
}

func (c *DeleteConversationCommand) setRequestedBy(requestedBy string) error {
	if requestedBy == "" {
		return ErrRequestedByIsRequired
	}

	c.requestedBy = requestedBy
	return nil
}
