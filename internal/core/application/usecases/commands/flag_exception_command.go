package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

var (
	ErrFlagExceptionCommandIsNotConstructed = errors.New(
		"FlagExceptionCommand must be created via NewFlagExceptionCommand constructor",
	)
	ErrExceptionReasonIsRequired = errors.New("exception reason is required")
)

// FlagExceptionCommand represents an operator reporting a problem on a
// claimed stage that blocks the order until a supervisor resolves it.
type FlagExceptionCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	stage           order.StageKind
	assignee        string
	exceptionReason string
	notes           string

	guard guard.ConstructorGuard
}

// NewFlagExceptionCommand creates a command to flag an exception on a
// claimed stage. The reason is mandatory.
func NewFlagExceptionCommand(
	orderID kernel.UUID,
	stage order.StageKind,
	assignee string,
	exceptionReason string,
	notes string,
) (FlagExceptionCommand, error) {
	flagCommand := FlagExceptionCommand{
		guard: guard.NewConstructorGuard(),
		notes: notes,
	}

	if err := errors.Join(
		flagCommand.setOrderID(orderID),
		flagCommand.setStage(stage),
		flagCommand.setAssignee(assignee),
		flagCommand.setExceptionReason(exceptionReason),
	); err != nil {
		return FlagExceptionCommand{}, err
	}

	return flagCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c FlagExceptionCommand) Validate() error {
	return c.guard.Validate(ErrFlagExceptionCommandIsNotConstructed)
}

// OrderID returns the identifier of the blocked order.
func (c FlagExceptionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the pipeline stage the problem occurred on.
func (c FlagExceptionCommand) Stage() order.StageKind {
	return c.stage
}

// Assignee returns the operator reporting the problem.
func (c FlagExceptionCommand) Assignee() string {
	return c.assignee
}

// ExceptionReason returns the mandatory problem description.
func (c FlagExceptionCommand) ExceptionReason() string {
	return c.exceptionReason
}

// Notes returns the optional free-form notes.
func (c FlagExceptionCommand) Notes() string {
	return c.notes
}

func (c *FlagExceptionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FlagExceptionCommand) setStage(stage order.StageKind) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *FlagExceptionCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}

	c.assignee = assignee
	return nil
}

func (c *FlagExceptionCommand) setExceptionReason(exceptionReason string) error {
	if exceptionReason == "" {
		return ErrExceptionReasonIsRequired
	}

	c.exceptionReason = exceptionReason
	return nil
}
