package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/guard"
)

var (
	ErrStartConversationCommandIsNotConstructed = errors.New(
		"StartConversationCommand must be created via NewStartConversationCommand constructor",
	)
	ErrCreatedByIsRequired = errors.New("createdBy is required")
)

// StartConversationCommand represents a request to open a new assistant
// conversation for a user. The title is optional; when empty it is derived
// from the first user message.
type StartConversationCommand struct { //nolint:recvcheck //using for validation
	conversationID kernel.UUID
	createdBy      string
	title          string

	guard guard.ConstructorGuard
}

// NewStartConversationCommand creates a command to open a conversation.
func NewStartConversationCommand(conversationID kernel.UUID, createdBy, title string) (StartConversationCommand, error) {
	startCommand := StartConversationCommand{
		guard: guard.NewConstructorGuard(),
		title: title,
	}

	if err := errors.Join(
		startCommand.setConversationID(conversationID),
		startCommand.setCreatedBy(createdBy),
	); err != nil {
		return StartConversationCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartConversationCommand) Validate() error {
	return c.guard.Validate(ErrStartConversationCommandIsNotConstructed)
}

// ConversationID returns the identifier for the new conversation.
func (c StartConversationCommand) ConversationID() kernel.UUID {
	return c.conversationID
}

// CreatedBy returns the user opening the conversation.
func (c StartConversationCommand) CreatedBy() string {
	return c.createdBy
}

// Title returns the optional conversation title.
func (c StartConversationCommand) Title() string {
	return c.title
}

func (c *StartConversationCommand) setConversationID(conversationID kernel.UUID) error {
	if err := conversationID.Validate(); err != nil {
		return err
	}

	c.conversationID = conversationID
	return nil
}

func (c *StartConversationCommand) setCreatedBy(createdBy string) error {
	if createdBy == "" {
		return ErrCreatedByIsRequired
	}

	c.createdBy = createdBy
	return nil
}
