package commands

import (
	"errors"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/guard"
)

// ErrUpdatePriorityCommandIsNotConstructed is returned when the command was
// not built through its constructor.
var ErrUpdatePriorityCommandIsNotConstructed = errors.New(
	"UpdatePriorityCommand must be created via NewUpdatePriorityCommand constructor",
)

// UpdatePriorityCommand represents a request to change the urgency band of
// an existing order.
type UpdatePriorityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	priority int

	guard guard.ConstructorGuard
}

// NewUpdatePriorityCommand creates a command to change an order's priority.
func NewUpdatePriorityCommand(orderID kernel.UUID, priority int) (UpdatePriorityCommand, error) {
	priorityCommand := UpdatePriorityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		priorityCommand.setOrderID(orderID),
		priorityCommand.setPriority(priority),
	); err != nil {
		return UpdatePriorityCommand{}, err
	}

	return priorityCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePriorityCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePriorityCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c UpdatePriorityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Priority returns the new urgency band.
func (c UpdatePriorityCommand) Priority() int {
	return c.priority
}

func (c *UpdatePriorityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdatePriorityCommand) setPriority(priority int) error {
	if priority < order.MinPriority || priority > order.MaxPriority {
		return ErrPriorityIsOutOfRange
	}

	c.priority = priority
	return nil
}
