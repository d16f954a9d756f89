package queries

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/guard"
)

// ErrGetConversationQueryIsNotConstructed is returned when the query was not
// built through its constructor.
var ErrGetConversationQueryIsNotConstructed = errors.New(
	"GetConversationQuery must be created via NewGetConversationQuery constructor",
)

// GetConversationQuery retrieves one conversation with its full message
// history. Users can only read their own conversations.
type GetConversationQuery struct {
	conversationID kernel.UUID
	requestedBy    string

	guard guard.ConstructorGuard
}

// NewGetConversationQuery creates a query to retrieve one conversation.
func NewGetConversationQuery(conversationID kernel.UUID, requestedBy string) (GetConversationQuery, error) {
	if err := conversationID.Validate(); err != nil {
		return GetConversationQuery{}, err
	}
	if requestedBy == "" {
		return GetConversationQuery{}, ErrRequestedByIsRequired
	}

	return GetConversationQuery{
		conversationID: conversationID,
		requestedBy:    requestedBy,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConversationQuery) Validate() error {
	return q.guard.Validate(ErrGetConversationQueryIsNotConstructed)
}

// ConversationID returns the identifier of the requested conversation.
func (q GetConversationQuery) ConversationID() kernel.UUID {
	return q.conversationID
}

// RequestedBy returns the user requesting the conversation.
func (q GetConversationQuery) RequestedBy() string {
	return q.requestedBy
}
