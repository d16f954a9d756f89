package queries

import (
	"context"

	"workflow/internal/core/ports"
	"workflow/internal/pkg/errs"
)

// GetConversationQueryHandler retrieves one conversation with its messages.
// A conversation owned by another user is reported as not found.
type GetConversationQueryHandler struct {
	conversationRepo ports.ConversationRepository
}

// NewGetConversationQueryHandler creates a handler for single-conversation
// lookups.
func NewGetConversationQueryHandler(conversationRepo ports.ConversationRepository) GetConversationQueryHandler {
	return GetConversationQueryHandler{conversationRepo: conversationRepo}
}

// Handle executes the query.
func (h GetConversationQueryHandler) Handle(
	ctx context.Context,
	query GetConversationQuery,
) (ConversationResponse, error) {
	if err := query.Validate(); err != nil {
		return ConversationResponse{}, err
	}

	aggregate, err := h.conversationRepo.Get(ctx, query.ConversationID())
	if err != nil {
		return ConversationResponse{}, err
	}
	if aggregate.CreatedBy() != query.RequestedBy() {
		return ConversationResponse{}, errs.NewObjectNotFoundError("conversationId", query.ConversationID().String())
	}

	messages := make([]MessageResponse, 0, len(aggregate.Messages()))
	for _, message := range aggregate.Messages() {
		messages = append(messages, MessageResponse{
			ID:        message.ID(),
			Role:      message.Role(),
			Content:   message.Content(),
			CreatedAt: message.CreatedAt(),
		})
	}

	return ConversationResponse{
		ID:        aggregate.ID(),
		Title:     aggregate.Title(),
		Messages:  messages,
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}, nil
}
