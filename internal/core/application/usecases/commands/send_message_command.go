package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/guard"
)

var (
	ErrSendMessageCommandIsNotConstructed = errors.New(
		"SendMessageCommand must be created via NewSendMessageCommand constructor",
	)
	ErrSenderIsRequired  = errors.New("sender is required")
	ErrContentIsRequired = errors.New("content is required")
)

// SendMessageCommand represents a user sending a chat message to the
// assistant inside an existing conversation.
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	conversationID kernel.UUID
	sender         string
	content        string

	guard guard.ConstructorGuard
}

// NewSendMessageCommand creates a command to send a chat message.
func NewSendMessageCommand(conversationID kernel.UUID, sender, content string) (SendMessageCommand, error) {
	messageCommand := SendMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		messageCommand.setConversationID(conversationID),
		messageCommand.setSender(sender),
		messageCommand.setContent(content),
	); err != nil {
		return SendMessageCommand{}, err
	}

	return messageCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

// ConversationID returns the target conversation identifier.
func (c SendMessageCommand) ConversationID() kernel.UUID {
	return c.conversationID
}

// Sender returns the user sending the message.
func (c SendMessageCommand) Sender() string {
	return c.sender
}

// Content returns the message text.
func (c SendMessageCommand) Content() string {
	return c.content
}

func (c *SendMessageCommand) setConversationID(conversationID kernel.UUID) error {
	if err := conversationID.Validate(); err != nil {
		return err
	}

	c.conversationID = conversationID
	return nil
}

func (c *SendMessageCommand) setSender(sender string) error {
	if sender == "" {
		return ErrSenderIsRequired
	}

	c.sender = sender
	return nil
}

func (c *SendMessageCommand) setContent(content string) error {
	if content == "" {
		return ErrContentIsRequired
	}

	c.content = content
	return nil
}
