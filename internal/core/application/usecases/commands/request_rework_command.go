package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

// ErrRequestReworkCommandIsNotConstructed is returned when the command was
// not built through its constructor.
var ErrRequestReworkCommandIsNotConstructed = errors.New(
	"RequestReworkCommand must be created via NewRequestReworkCommand constructor",
)

// RequestReworkCommand represents a supervisor sending a flagged stage back
// to be redone. Only the targeted stage is reset; later stages keep their
// recorded state.
type RequestReworkCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	stage           order.StageKind
	supervisor      string
	supervisorNotes string

	guard guard.ConstructorGuard
}

// NewRequestReworkCommand creates a command to send a flagged stage back to
// pending.
func NewRequestReworkCommand(
	orderID kernel.UUID,
	stage order.StageKind,
	supervisor string,
	supervisorNotes string,
) (RequestReworkCommand, error) {
	reworkCommand := RequestReworkCommand{
		guard:           guard.NewConstructorGuard(),
		supervisorNotes: supervisorNotes,
	}

	if err := errors.Join(
		reworkCommand.setOrderID(orderID),
		reworkCommand.setStage(stage),
		reworkCommand.setSupervisor(supervisor),
	); err != nil {
		return RequestReworkCommand{}, err
	}

	return reworkCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestReworkCommand) Validate() error {
	return c.guard.Validate(ErrRequestReworkCommandIsNotConstructed)
}

// OrderID returns the identifier of the flagged order.
func (c RequestReworkCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the pipeline stage being sent back.
func (c RequestReworkCommand) Stage() order.StageKind {
	return c.stage
}

// Supervisor returns the supervisor requesting the rework.
func (c RequestReworkCommand) Supervisor() string {
	return c.supervisor
}

// SupervisorNotes returns the optional resolution notes.
func (c RequestReworkCommand) SupervisorNotes() string {
	return c.supervisorNotes
}

func (c *RequestReworkCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestReworkCommand) setStage(stage order.StageKind) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *RequestReworkCommand) setSupervisor(supervisor string) error {
	if supervisor == "" {
		return ErrSupervisorIsRequired
	}

	c.supervisor = supervisor
	return nil
}
