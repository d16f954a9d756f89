package commands_test

import (
	"context"
	"errors"
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/core/ports"
	"workflow/internal/pkg/errs"
	"workflow/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConversationRepository struct{ mock.Mock }

func (m *MockConversationRepository) Add(ctx context.Context, c *conversation.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversationRepository) Update(ctx context.Context, c *conversation.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetAllByUser(ctx context.Context, createdBy string) ([]*conversation.Conversation, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockConversationUoW struct{ mock.Mock }

func (m *MockConversationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConversationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConversationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConversationUoW) ConversationRepository() ports.ConversationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConversationRepository)
}

type MockConversationUoWFactory struct{ mock.Mock }

func (m *MockConversationUoWFactory) Create() commands.ConversationUoW {
	args := m.Called()
	return args.Get(0).(commands.ConversationUoW)
}

type MockChatClient struct{ mock.Mock }

func (m *MockChatClient) Chat(ctx context.Context, messages []ports.ChatMessage) (ports.ChatMessage, error) {
	args := m.Called(ctx, messages)
	return args.Get(0).(ports.ChatMessage), args.Error(1)
}

func TestSendMessageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSendMessageCommand(id, "alice", "where is PO-1001 stuck?")

	aggregate, err := conversation.NewConversation(id, "alice", "")
	require.NoError(t, err)

	repo := new(MockConversationRepository)
	uow := new(MockConversationUoW)
	chatClient := new(MockChatClient)
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetAll", ctx).Return([]*order.Order{}, nil).Once()

	// The model gets a system prompt with the shop floor snapshot before
	// the conversation history.
	primedWithContext := mock.MatchedBy(func(messages []ports.ChatMessage) bool {
		return len(messages) == 2 &&
			messages[0].Role == "system" &&
			messages[1].Role == "user"
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		chatClient.On("Chat", ctx, primedWithContext).
			Return(ports.ChatMessage{Role: "assistant", Content: "PO-1001 is waiting on assembly."}, nil).
			Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*conversation.Conversation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConversationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendMessageCommandHandler(factory, orderRepo, chatClient, lock.NewKeyed())
	reply, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, conversation.RoleAssistant, reply.Role())
	assert.Equal(t, "PO-1001 is waiting on assembly.", reply.Content())

	// Both turns landed in the history, user first.
	messages := aggregate.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, conversation.RoleUser, messages[0].Role())
	assert.Equal(t, conversation.RoleAssistant, messages[1].Role())
	repo.AssertExpectations(t)
	chatClient.AssertExpectations(t)
}

func TestSendMessageCommandHandler_Handle_ForeignConversation(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSendMessageCommand(id, "mallory", "hi")

	aggregate, err := conversation.NewConversation(id, "alice", "")
	require.NoError(t, err)

	repo := new(MockConversationRepository)
	uow := new(MockConversationUoW)
	chatClient := new(MockChatClient)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConversationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendMessageCommandHandler(factory, new(MockOrderRepository), chatClient, lock.NewKeyed())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	chatClient.AssertNotCalled(t, "Chat")
	assert.Empty(t, aggregate.Messages())
}

func TestSendMessageCommandHandler_Handle_ChatError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSendMessageCommand(id, "alice", "hi")

	aggregate, err := conversation.NewConversation(id, "alice", "")
	require.NoError(t, err)

	repo := new(MockConversationRepository)
	uow := new(MockConversationUoW)
	chatClient := new(MockChatClient)
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetAll", ctx).Return([]*order.Order{}, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(aggregate, nil).Once(),
		chatClient.On("Chat", ctx, mock.AnythingOfType("[]ports.ChatMessage")).
			Return(ports.ChatMessage{}, errors.New("model unavailable")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConversationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendMessageCommandHandler(factory, orderRepo, chatClient, lock.NewKeyed())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.EqualError(t, err, "model unavailable")
	repo.AssertNotCalled(t, "Update")
}
