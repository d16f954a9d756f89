package ports

import (
	"context"
)

// ChatMessage is a single turn sent to or received from the model.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatClient talks to the language-model backend that powers the
// assistant. Implementations are expected to be safe for concurrent use.
type ChatClient interface {
	// Chat sends the conversation history and returns the assistant reply.
	Chat(ctx context.Context, messages []ChatMessage) (ChatMessage, error)
}
