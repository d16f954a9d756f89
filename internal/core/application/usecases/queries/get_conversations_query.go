package queries

import (
	"errors"
	"time"

	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/guard"
)

var (
	ErrGetConversationsQueryIsNotConstructed = errors.New(
		"GetConversationsQuery must be created via NewGetConversationsQuery constructor",
	)
	ErrRequestedByIsRequired = errors.New("requestedBy is required")
)

// GetConversationsQuery lists a user's assistant conversations, newest
// first, without their message bodies.
type GetConversationsQuery struct {
	requestedBy string

	guard guard.ConstructorGuard
}

// NewGetConversationsQuery creates a query to list a user's conversations.
func NewGetConversationsQuery(requestedBy string) (GetConversationsQuery, error) {
	if requestedBy == "" {
		return GetConversationsQuery{}, ErrRequestedByIsRequired
	}

	return GetConversationsQuery{
		requestedBy: requestedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConversationsQuery) Validate() error {
	return q.guard.Validate(ErrGetConversationsQueryIsNotConstructed)
}

// RequestedBy returns the user whose conversations are listed.
func (q GetConversationsQuery) RequestedBy() string {
	return q.requestedBy
}

// ConversationSummaryResponse is one conversation in the list read model.
type ConversationSummaryResponse struct {
	ID           kernel.UUID
	Title        string
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MessageResponse is one chat turn in the conversation read model.
type MessageResponse struct {
	ID        kernel.UUID
	Role      conversation.Role
	Content   string
	CreatedAt time.Time
}

// ConversationResponse is a full conversation with its message history.
type ConversationResponse struct {
	ID        kernel.UUID
	Title     string
	Messages  []MessageResponse
	CreatedAt time.Time
	UpdatedAt time.Time
}
