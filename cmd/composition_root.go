package cmd

import (
	"workflow/internal/adapters/out/postgres"
	"workflow/internal/adapters/out/postgres/convrepo"
	"workflow/internal/adapters/out/postgres/orderrepo"
	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/application/usecases/queries"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/ports"
	"workflow/internal/pkg/lock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	chatClient ports.ChatClient

	// One keyed lock set shared by every mutating handler so operations on
	// the same aggregate serialize process-wide.
	locks *lock.Keyed
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, chatClient ports.ChatClient) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		chatClient: chatClient,
		locks:      lock.NewKeyed(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) conversationUoWFactory() commands.ConversationUoWFactory {
	return FuncConversationUoWFactory(func() commands.ConversationUoW {
		return c.uowFactory.Create()
	})
}

// readOnlyTracker discards aggregate tracking for repositories used outside
// a unit of work.
type readOnlyTracker struct{}

func (readOnlyTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepository returns a repository outside any transaction, used by the
// query handlers and the seeder's emptiness check.
func (c *CompositionRoot) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, readOnlyTracker{})
}

// ConversationRepository returns a repository outside any transaction.
func (c *CompositionRoot) ConversationRepository() ports.ConversationRepository {
	return convrepo.NewGormConversationRepository(c.gormDB, readOnlyTracker{})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClaimStageCommandHandler() commands.ClaimStageCommandHandler {
	return commands.NewClaimStageCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateCompleteStageCommandHandler() commands.CompleteStageCommandHandler {
	return commands.NewCompleteStageCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateFlagExceptionCommandHandler() commands.FlagExceptionCommandHandler {
	return commands.NewFlagExceptionCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateApproveSkipCommandHandler() commands.ApproveSkipCommandHandler {
	return commands.NewApproveSkipCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateRequestReworkCommandHandler() commands.RequestReworkCommandHandler {
	return commands.NewRequestReworkCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateUpdatePriorityCommandHandler() commands.UpdatePriorityCommandHandler {
	return commands.NewUpdatePriorityCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateStartConversationCommandHandler() commands.StartConversationCommandHandler {
	return commands.NewStartConversationCommandHandler(c.conversationUoWFactory())
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.conversationUoWFactory(), c.OrderRepository(), c.chatClient, c.locks)
}

func (c *CompositionRoot) CreateDeleteConversationCommandHandler() commands.DeleteConversationCommandHandler {
	return commands.NewDeleteConversationCommandHandler(c.conversationUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetWorkQueueQueryHandler() queries.GetWorkQueueQueryHandler {
	return queries.NewGetWorkQueueQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetWipSummaryQueryHandler() queries.GetWipSummaryQueryHandler {
	return queries.NewGetWipSummaryQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetConversationsQueryHandler() queries.GetConversationsQueryHandler {
	return queries.NewGetConversationsQueryHandler(c.ConversationRepository())
}

func (c *CompositionRoot) CreateGetConversationQueryHandler() queries.GetConversationQueryHandler {
	return queries.NewGetConversationQueryHandler(c.ConversationRepository())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncConversationUoWFactory func() commands.ConversationUoW

func (f FuncConversationUoWFactory) Create() commands.ConversationUoW {
	return f()
}
