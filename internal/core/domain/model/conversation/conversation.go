package conversation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/errs"
)

// ErrConversationIsNotConstructed is returned when a Conversation was not
// created through NewConversation or RestoreConversation.
var ErrConversationIsNotConstructed = errors.New("Conversation must be created via NewConversation or RestoreConversation")

const (
	// MaxMessageLength caps a single chat message.
	MaxMessageLength = 4000

	// HistoryWindow is the number of trailing messages sent to the model
	// as conversation context.
	HistoryWindow = 20

	maxTitleLength     = 120
	derivedTitleLength = 50
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Validate checks that the role is one of the known chat roles.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a chat role", string(r)))
}

// Message is one chat turn inside a conversation. Messages are append-only
// and owned by their conversation.
type Message struct {
	id        kernel.UUID
	role      Role
	content   string
	createdAt time.Time
}

// RestoreMessage reconstructs a Message from persistence.
func RestoreMessage(id kernel.UUID, role Role, content string, createdAt time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	return &Message{
		id:        id,
		role:      role,
		content:   content,
		createdAt: createdAt,
	}, nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Role returns the message author role.
func (m *Message) Role() Role {
	return m.role
}

// Content returns the message text.
func (m *Message) Content() string {
	return m.content
}

// CreatedAt returns when the message was appended.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// Conversation is an AI assistant chat owned by one user. It holds the
// ordered message history and derives its title from the first user message
// when none is given.
type Conversation struct {
	id        kernel.UUID
	createdBy string
	title     string
	messages  []*Message
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewConversation creates an empty conversation for a user. Title is
// optional; when empty it is derived from the first user message later.
func NewConversation(id kernel.UUID, createdBy, title string) (*Conversation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if createdBy == "" {
		return nil, errs.NewValueIsRequiredError("createdBy")
	}

	now := time.Now().UTC()
	c := &Conversation{
		id:            id,
		createdBy:     createdBy,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if err := c.setTitle(title); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreConversation reconstructs a Conversation from persistence.
// Messages must already be sorted by creation time ascending.
func RestoreConversation(
	id kernel.UUID,
	createdBy, title string,
	createdAt, updatedAt time.Time,
	messages []*Message,
) (*Conversation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if createdBy == "" {
		return nil, errs.NewValueIsRequiredError("createdBy")
	}
	return &Conversation{
		id:            id,
		createdBy:     createdBy,
		title:         title,
		messages:      messages,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Conversation was created through a constructor.
func (c *Conversation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConversationIsNotConstructed
	}
	return nil
}

// ID returns the conversation identifier.
func (c *Conversation) ID() kernel.UUID {
	return c.id
}

// CreatedBy returns the owning username.
func (c *Conversation) CreatedBy() string {
	return c.createdBy
}

// Title returns the conversation title, empty when not yet derived.
func (c *Conversation) Title() string {
	return c.title
}

// CreatedAt returns the creation time.
func (c *Conversation) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the time of the last appended message or rename.
func (c *Conversation) UpdatedAt() time.Time {
	return c.updatedAt
}

// Messages returns the chat history in creation order. The returned slice
// is a copy.
func (c *Conversation) Messages() []*Message {
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastMessage returns the most recent message, nil for an empty conversation.
func (c *Conversation) LastMessage() *Message {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// AddUserMessage appends a user turn. Content is trimmed, required, and
// capped at MaxMessageLength. The first user message derives the title when
// none was set.
func (c *Conversation) AddUserMessage(content string) (*Message, error) {
	return c.append(RoleUser, content)
}

// AddAssistantMessage appends an assistant turn.
func (c *Conversation) AddAssistantMessage(content string) (*Message, error) {
	return c.append(RoleAssistant, content)
}

func (c *Conversation) append(role Role, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewValueIsRequiredError("content")
	}
	if len(content) > MaxMessageLength {
		return nil, errs.NewValueIsOutOfRangeError("content", len(content), 1, MaxMessageLength)
	}

	now := time.Now().UTC()
	msg := &Message{
		id:        kernel.NewUUID(),
		role:      role,
		content:   content,
		createdAt: now,
	}
	c.messages = append(c.messages, msg)
	if c.title == "" && role == RoleUser {
		c.title = deriveTitle(content)
	}
	c.updatedAt = now
	return msg, nil
}

// Rename sets a new title.
func (c *Conversation) Rename(title string) error {
	if err := c.setTitle(title); err != nil {
		return err
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

// History returns the trailing HistoryWindow messages, oldest first, for
// building the model context.
func (c *Conversation) History() []*Message {
	from := 0
	if len(c.messages) > HistoryWindow {
		from = len(c.messages) - HistoryWindow
	}
	out := make([]*Message, len(c.messages)-from)
	copy(out, c.messages[from:])
	return out
}

func (c *Conversation) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if len(title) > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title", len(title), 0, maxTitleLength)
	}
	c.title = title
	return nil
}

// deriveTitle truncates the first user message into a display title.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= derivedTitleLength {
		return content
	}
	return strings.TrimSpace(string(runes[:derivedTitleLength])) + "…"
}
