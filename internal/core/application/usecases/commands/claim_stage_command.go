package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

var (
	ErrClaimStageCommandIsNotConstructed = errors.New(
		"ClaimStageCommand must be created via NewClaimStageCommand constructor",
	)
	ErrAssigneeIsRequired = errors.New("assignee is required")
)

// ClaimStageCommand represents an operator taking ownership of the active
// stage of an order.
type ClaimStageCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	stage    order.StageKind
	assignee string

	guard guard.ConstructorGuard
}

// NewClaimStageCommand creates a command to claim a pipeline stage.
// Validates that the order ID and stage are valid and the assignee is not
// empty.
func NewClaimStageCommand(orderID kernel.UUID, stage order.StageKind, assignee string) (ClaimStageCommand, error) {
	claimCommand := ClaimStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setStage(stage),
		claimCommand.setAssignee(assignee),
	); err != nil {
		return ClaimStageCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimStageCommand) Validate() error {
	return c.guard.Validate(ErrClaimStageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the pipeline stage being claimed.
func (c ClaimStageCommand) Stage() order.StageKind {
	return c.stage
}

// Assignee returns the operator taking ownership.
func (c ClaimStageCommand) Assignee() string {
	return c.assignee
}

func (c *ClaimStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimStageCommand) setStage(stage order.StageKind) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *ClaimStageCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}

	c.assignee = assignee
	return nil
}
