package queries

import (
	"context"

	"workflow/internal/core/ports"
)

// GetConversationsQueryHandler lists a user's conversations through the
// repository.
type GetConversationsQueryHandler struct {
	conversationRepo ports.ConversationRepository
}

// NewGetConversationsQueryHandler creates a handler for conversation list
// queries.
func NewGetConversationsQueryHandler(conversationRepo ports.ConversationRepository) GetConversationsQueryHandler {
	return GetConversationsQueryHandler{conversationRepo: conversationRepo}
}

// Handle executes the query.
func (h GetConversationsQueryHandler) Handle(
	ctx context.Context,
	query GetConversationsQuery,
) ([]ConversationSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.conversationRepo.GetAllByUser(ctx, query.RequestedBy())
	if err != nil {
		return nil, err
	}

	responses := make([]ConversationSummaryResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, ConversationSummaryResponse{
			ID:           aggregate.ID(),
			Title:        aggregate.Title(),
			MessageCount: len(aggregate.Messages()),
			CreatedAt:    aggregate.CreatedAt(),
			UpdatedAt:    aggregate.UpdatedAt(),
		})
	}

	return responses, nil
}
