package commands_test

import (
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewStartConversationCommand_EmptyCreatedBy(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewStartConversationCommand(id, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreatedByIsRequired)
}

func TestStartConversationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewStartConversationCommand(id, "alice", "stuck orders")

	repo := new(MockConversationRepository)
	uow := new(MockConversationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*conversation.Conversation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConversationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartConversationCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
