package commands_test

import (
	"testing"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimStageCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewClaimStageCommand(id, order.Preparation, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Preparation, cmd.Stage())
	assert.Equal(t, "alice", cmd.Assignee())
}

func TestNewClaimStageCommand_InvalidStage(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewClaimStageCommand(id, order.UnknownStage, "alice")
	require.Error(t, err)
}

func TestNewClaimStageCommand_EmptyAssignee(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewClaimStageCommand(id, order.Preparation, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAssigneeIsRequired)
}

func TestClaimStageCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ClaimStageCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrClaimStageCommandIsNotConstructed)
}
