package ports

import (
	"context"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must persist the aggregate with its full stage status set
// and provide per-order write atomicity: a failed save leaves the stored
// aggregate unchanged.
type OrderRepository interface {
	// Add persists a new order aggregate. Fails with DuplicateKeyError
	// when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier, with all stage
	// statuses loaded. Fails with ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its business key.
	// Fails with ObjectNotFoundError when absent.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAll retrieves every order with stage statuses loaded.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
