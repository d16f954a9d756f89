package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

var (
	ErrApproveSkipCommandIsNotConstructed = errors.New(
		"ApproveSkipCommand must be created via NewApproveSkipCommand constructor",
	)
	ErrSupervisorIsRequired = errors.New("supervisor is required")
)

// ApproveSkipCommand represents a supervisor resolving a flagged stage by
// skipping it, letting the order move on to the next stage.
type ApproveSkipCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	stage           order.StageKind
	supervisor      string
	supervisorNotes string

	guard guard.ConstructorGuard
}

// NewApproveSkipCommand creates a command to approve skipping a flagged
// stage.
func NewApproveSkipCommand(
	orderID kernel.UUID,
	stage order.StageKind,
	supervisor string,
	supervisorNotes string,
) (ApproveSkipCommand, error) {
	skipCommand := ApproveSkipCommand{
		guard:           guard.NewConstructorGuard(),
		supervisorNotes: supervisorNotes,
	}

	if err := errors.Join(
		skipCommand.setOrderID(orderID),
		skipCommand.setStage(stage),
		skipCommand.setSupervisor(supervisor),
	); err != nil {
		return ApproveSkipCommand{}, err
	}

	return skipCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveSkipCommand) Validate() error {
	return c.guard.Validate(ErrApproveSkipCommandIsNotConstructed)
}

// OrderID returns the identifier of the flagged order.
func (c ApproveSkipCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the flagged pipeline stage.
func (c ApproveSkipCommand) Stage() order.StageKind {
	return c.stage
}

// Supervisor returns the supervisor approving the skip.
func (c ApproveSkipCommand) Supervisor() string {
	return c.supervisor
}

// SupervisorNotes returns the optional resolution notes.
func (c ApproveSkipCommand) SupervisorNotes() string {
	return c.supervisorNotes
}

func (c *ApproveSkipCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveSkipCommand) setStage(stage order.StageKind) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *ApproveSkipCommand) setSupervisor(supervisor string) error {
	if supervisor == "" {
		return ErrSupervisorIsRequired
	}

	c.supervisor = supervisor
	return nil
}
