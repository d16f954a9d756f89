package commands

import (
	"context"
	"fmt"
	"strings"

	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/services"
	"workflow/internal/core/ports"
	"workflow/internal/pkg/errs"
	"workflow/internal/pkg/lock"
)

// SendMessageCommandHandler appends a user message to a conversation, asks
// the model for a reply, and persists both turns atomically. The model is
// primed with a system message describing the current shop floor state so
// it can answer workflow questions. Messages to the same conversation are
// serialized by the keyed lock so histories never interleave.
type SendMessageCommandHandler struct {
	uowFactory ConversationUoWFactory
	orderRepo  ports.OrderRepository
	chatClient ports.ChatClient
	locks      *lock.Keyed
}

// NewSendMessageCommandHandler creates a handler for sending chat messages.
func NewSendMessageCommandHandler(
	uowFactory ConversationUoWFactory,
	orderRepo ports.OrderRepository,
	chatClient ports.ChatClient,
	locks *lock.Keyed,
) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		orderRepo:  orderRepo,
		chatClient: chatClient,
		locks:      locks,
	}
}

// Handle processes the send message command and returns the assistant reply.
// A conversation owned by another user is reported as not found.
func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*conversation.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.locks.Lock(cmd.ConversationID().String())
	defer h.locks.Unlock(cmd.ConversationID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	conversationRepo := uow.ConversationRepository()

	aggregate, err := conversationRepo.Get(ctx, cmd.ConversationID())
	if err != nil {
		return nil, err
	}
	if aggregate.CreatedBy() != cmd.Sender() {
		return nil, errs.NewObjectNotFoundError("conversationId", cmd.ConversationID().String())
	}

	if _, err = aggregate.AddUserMessage(cmd.Content()); err != nil {
		return nil, err
	}

	contextMessage, err := h.buildContextMessage(ctx)
	if err != nil {
		return nil, err
	}

	history := aggregate.History()
	chatMessages := make([]ports.ChatMessage, 0, len(history)+1)
	chatMessages = append(chatMessages, contextMessage)
	for _, message := range history {
		chatMessages = append(chatMessages, ports.ChatMessage{
			Role:    string(message.Role()),
			Content: message.Content(),
		})
	}

	reply, err := h.chatClient.Chat(ctx, chatMessages)
	if err != nil {
		return nil, err
	}

	assistantMessage, err := aggregate.AddAssistantMessage(reply.Content)
	if err != nil {
		return nil, err
	}

	if err = conversationRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assistantMessage, nil
}

// buildContextMessage snapshots the shop floor into a system prompt.
func (h SendMessageCommandHandler) buildContextMessage(ctx context.Context) (ports.ChatMessage, error) {
	orders, err := h.orderRepo.GetAll(ctx)
	if err != nil {
		return ports.ChatMessage{}, err
	}

	summary := services.SummarizeWip(orders)

	var b strings.Builder
	b.WriteString("You are the assistant for a production workflow tracker. ")
	b.WriteString("Orders move through the stages PREPARATION, ASSEMBLY and DELIVERY. ")
	fmt.Fprintf(&b, "Current shop floor status: %d orders total, %d completed, %d with exceptions.",
		summary.TotalOrders, summary.CompletedOrders, summary.ExceptionOrders)
	for _, stage := range summary.Stages {
		fmt.Fprintf(&b, " %s: %d pending, %d claimed, %d in exception, %d completed, %d skipped.",
			stage.Stage, stage.Pending, stage.Claimed, stage.Exception, stage.Completed, stage.Skipped)
	}
	b.WriteString(" Answer questions about order status briefly and concretely.")

	return ports.ChatMessage{
		Role:    string(conversation.RoleSystem),
		Content: b.String(),
	}, nil
}
