package ports

import (
	"context"

	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"
)

// ConversationRepository defines the persistence contract for assistant
// conversation aggregates.
type ConversationRepository interface {
	// Add persists a new conversation aggregate.
	Add(ctx context.Context, aggregate *conversation.Conversation) error

	// Update persists changes to an existing conversation aggregate,
	// including any appended messages.
	Update(ctx context.Context, aggregate *conversation.Conversation) error

	// Get retrieves a conversation by its unique identifier, with all
	// messages loaded. Fails with ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error)

	// GetAllByUser retrieves every conversation created by the given user,
	// newest first.
	GetAllByUser(ctx context.Context, createdBy string) ([]*conversation.Conversation, error)

	// Delete removes a conversation and its messages.
	// Fails with ObjectNotFoundError when absent.
	Delete(ctx context.Context, id kernel.UUID) error
}
