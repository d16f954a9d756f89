// Package seeding bootstraps demonstration data on an empty database.
// Everything goes through the public command handlers so the seeded orders
// obey the same pipeline rules as live traffic.
package seeding

import (
	"context"
	"fmt"
	"log/slog"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/core/ports"
)

// Handlers bundles the command handlers the seeder replays.
type Handlers struct {
	CreateOrder   commands.CreateOrderCommandHandler
	ClaimStage    commands.ClaimStageCommandHandler
	CompleteStage commands.CompleteStageCommandHandler
	FlagException commands.FlagExceptionCommandHandler
	ApproveSkip   commands.ApproveSkipCommandHandler
	RequestRework commands.RequestReworkCommandHandler
}

// Seeder replays the demonstration scenario when the database is empty.
type Seeder struct {
	handlers  Handlers
	orderRepo ports.OrderRepository
	logger    *slog.Logger
}

// NewSeeder creates a Seeder over the command handlers and the order
// repository used for the emptiness check.
func NewSeeder(handlers Handlers, orderRepo ports.OrderRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		handlers:  handlers,
		orderRepo: orderRepo,
		logger:    logger.With("component", "seeder"),
	}
}

// Seed creates three demonstration orders in distinct pipeline situations:
// PO-1001 sent back to assembly for rework, PO-1002 with an approved skip
// after an exception, PO-1003 fully delivered. No-op when orders exist.
func (s *Seeder) Seed(ctx context.Context) error {
	existing, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: check existing orders: %w", err)
	}
	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "Skipping demo data, orders already present", "count", len(existing))
		return nil
	}

	order1, err := s.createOrder(ctx, "PO-1001", 3, "Client A first batch")
	if err != nil {
		return err
	}
	if err := s.claim(ctx, order1, order.Preparation, "operator1"); err != nil {
		return err
	}
	if err := s.complete(ctx, order1, order.Preparation, "operator1", 30, "Prep done"); err != nil {
		return err
	}
	if err := s.claim(ctx, order1, order.Assembly, "operator2"); err != nil {
		return err
	}
	if err := s.complete(ctx, order1, order.Assembly, "operator2", 55, "Assembly initial pass"); err != nil {
		return err
	}

	order2, err := s.createOrder(ctx, "PO-1002", 5, "Urgent order")
	if err != nil {
		return err
	}
	if err := s.claim(ctx, order2, order.Preparation, "operator1"); err != nil {
		return err
	}
	if err := s.complete(ctx, order2, order.Preparation, "operator1", 20, "Fast prep"); err != nil {
		return err
	}
	if err := s.claim(ctx, order2, order.Assembly, "operator2"); err != nil {
		return err
	}
	if err := s.flag(ctx, order2, order.Assembly, "operator2", "Missing components", "Waiting on supplier"); err != nil {
		return err
	}

	order3, err := s.createOrder(ctx, "PO-1003", 2, "Standard run")
	if err != nil {
		return err
	}
	if err := s.claim(ctx, order3, order.Preparation, "operator3"); err != nil {
		return err
	}
	if err := s.complete(ctx, order3, order.Preparation, "operator3", 40, "Long prep"); err != nil {
		return err
	}
	if err := s.claim(ctx, order3, order.Assembly, "operator4"); err != nil {
		return err
	}
	if err := s.complete(ctx, order3, order.Assembly, "operator4", 50, "Assembly done"); err != nil {
		return err
	}
	if err := s.claim(ctx, order3, order.Delivery, "operator5"); err != nil {
		return err
	}
	if err := s.complete(ctx, order3, order.Delivery, "operator5", 15, "Delivered"); err != nil {
		return err
	}

	if err := s.approveSkip(ctx, order2, order.Assembly, "supervisor1", "Approve skip due to parts shortage"); err != nil {
		return err
	}
	if err := s.requestRework(ctx, order1, order.Assembly, "supervisor1", "Quality issue found"); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Seeded demo data", "orders", 3)
	return nil
}

func (s *Seeder) createOrder(ctx context.Context, orderNumber string, priority int, notes string) (kernel.UUID, error) {
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, orderNumber, priority, notes)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("seed %s: %w", orderNumber, err)
	}
	if err := s.handlers.CreateOrder.Handle(ctx, cmd); err != nil {
		return kernel.UUID{}, fmt.Errorf("seed %s: %w", orderNumber, err)
	}
	return orderID, nil
}

func (s *Seeder) claim(ctx context.Context, orderID kernel.UUID, stage order.StageKind, assignee string) error {
	cmd, err := commands.NewClaimStageCommand(orderID, stage, assignee)
	if err != nil {
		return fmt.Errorf("seed claim %s: %w", stage, err)
	}
	if err := s.handlers.ClaimStage.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("seed claim %s: %w", stage, err)
	}
	return nil
}

func (s *Seeder) complete(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.StageKind,
	assignee string,
	serviceTimeMinutes int64,
	notes string,
) error {
	cmd, err := commands.NewCompleteStageCommand(orderID, stage, assignee, serviceTimeMinutes, notes)
	if err != nil {
		return fmt.Errorf("seed complete %s: %w", stage, err)
	}
	if err := s.handlers.CompleteStage.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("seed complete %s: %w", stage, err)
	}
	return nil
}

func (s *Seeder) flag(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.StageKind,
	assignee, reason, notes string,
) error {
	cmd, err := commands.NewFlagExceptionCommand(orderID, stage, assignee, reason, notes)
	if err != nil {
		return fmt.Errorf("seed flag %s: %w", stage, err)
	}
	if err := s.handlers.FlagException.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("seed flag %s: %w", stage, err)
	}
	return nil
}

func (s *Seeder) approveSkip(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.StageKind,
	supervisor, supervisorNotes string,
) error {
	cmd, err := commands.NewApproveSkipCommand(orderID, stage, supervisor, supervisorNotes)
	if err != nil {
		return fmt.Errorf("seed approve-skip %s: %w", stage, err)
	}
	if err := s.handlers.ApproveSkip.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("seed approve-skip %s: %w", stage, err)
	}
	return nil
}

func (s *Seeder) requestRework(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.StageKind,
	supervisor, supervisorNotes string,
) error {
	cmd, err := commands.NewRequestReworkCommand(orderID, stage, supervisor, supervisorNotes)
	if err != nil {
		return fmt.Errorf("seed rework %s: %w", stage, err)
	}
	if err := s.handlers.RequestRework.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("seed rework %s: %w", stage, err)
	}
	return nil
}
