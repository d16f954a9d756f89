package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

var (
	ErrCompleteStageCommandIsNotConstructed = errors.New(
		"CompleteStageCommand must be created via NewCompleteStageCommand constructor",
	)
	ErrServiceTimeIsInvalid = errors.New("service time must not be negative")
)

// CompleteStageCommand represents an operator finishing the work on a
// claimed stage, recording the time spent and optional notes.
type CompleteStageCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	stage              order.StageKind
	assignee           string
	serviceTimeMinutes int64
	notes              string

	guard guard.ConstructorGuard
}

// NewCompleteStageCommand creates a command to complete a claimed stage.
func NewCompleteStageCommand(
	orderID kernel.UUID,
	stage order.StageKind,
	assignee string,
	serviceTimeMinutes int64,
	notes string,
) (CompleteStageCommand, error) {
	completeCommand := CompleteStageCommand{
		guard: guard.NewConstructorGuard(),
		notes: notes,
	}

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setStage(stage),
		completeCommand.setAssignee(assignee),
		completeCommand.setServiceTime(serviceTimeMinutes),
	); err != nil {
		return CompleteStageCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStageCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being worked.
func (c CompleteStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the pipeline stage being completed.
func (c CompleteStageCommand) Stage() order.StageKind {
	return c.stage
}

// Assignee returns the operator finishing the stage.
func (c CompleteStageCommand) Assignee() string {
	return c.assignee
}

// ServiceTimeMinutes returns the reported hands-on time.
func (c CompleteStageCommand) ServiceTimeMinutes() int64 {
	return c.serviceTimeMinutes
}

// Notes returns the optional completion notes.
func (c CompleteStageCommand) Notes() string {
	return c.notes
}

func (c *CompleteStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteStageCommand) setStage(stage order.StageKind) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *CompleteStageCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}

	c.assignee = assignee
	return nil
}

func (c *CompleteStageCommand) setServiceTime(serviceTimeMinutes int64) error {
	if serviceTimeMinutes < 0 {
		return ErrServiceTimeIsInvalid
	}

	c.serviceTimeMinutes = serviceTimeMinutes
	return nil
}
