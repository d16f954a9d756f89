package convrepo_test

import (
	"context"
	"testing"
	"time"

	"workflow/internal/adapters/out/postgres/convrepo"
	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ConversationRepositoryIntegrationTestSuite provides integration tests for
// ConversationRepository using PostgreSQL containers.
type ConversationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *convrepo.GormConversationRepository
	tracker    *MockAggregateTracker
}

func (suite *ConversationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&convrepo.ConversationDTO{}, &convrepo.MessageDTO{}))
}

func (suite *ConversationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE conversations, conversation_messages").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = convrepo.NewGormConversationRepository(suite.db, suite.tracker)
}

func (suite *ConversationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ConversationRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsMessages() {
	ctx := context.Background()

	aggregate, err := conversation.NewConversation(kernel.NewUUID(), "alice", "")
	suite.Require().NoError(err)
	_, err = aggregate.AddUserMessage("where is PO-1001 stuck?")
	suite.Require().NoError(err)
	_, err = aggregate.AddAssistantMessage("PO-1001 is waiting on assembly.")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("alice", loaded.CreatedBy())
	suite.Equal("where is PO-1001 stuck?", loaded.Title())
	suite.Require().Len(loaded.Messages(), 2)
	suite.Equal(conversation.RoleUser, loaded.Messages()[0].Role())
	suite.Equal(conversation.RoleAssistant, loaded.Messages()[1].Role())
}

func (suite *ConversationRepositoryIntegrationTestSuite) TestUpdate_AppendsNewMessages() {
	ctx := context.Background()

	aggregate, err := conversation.NewConversation(kernel.NewUUID(), "alice", "stuck orders")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	_, err = aggregate.AddUserMessage("what is blocked right now?")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Messages(), 1)
	suite.Equal("what is blocked right now?", loaded.Messages()[0].Content())
}

func (suite *ConversationRepositoryIntegrationTestSuite) TestGetAllByUser_FiltersAndOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first, err := conversation.NewConversation(kernel.NewUUID(), "alice", "first")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := conversation.NewConversation(kernel.NewUUID(), "alice", "second")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, second))

	other, err := conversation.NewConversation(kernel.NewUUID(), "bob", "not mine")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	conversations, err := suite.repository.GetAllByUser(ctx, "alice")
	suite.Require().NoError(err)
	suite.Require().Len(conversations, 2)
	for _, c := range conversations {
		suite.Equal("alice", c.CreatedBy())
	}
}

func (suite *ConversationRepositoryIntegrationTestSuite) TestDelete_RemovesConversationAndMessages() {
	ctx := context.Background()

	aggregate, err := conversation.NewConversation(kernel.NewUUID(), "alice", "")
	suite.Require().NoError(err)
	_, err = aggregate.AddUserMessage("hello")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.Require().NoError(suite.repository.Delete(ctx, aggregate.ID()))

	_, err = suite.repository.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestConversationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ConversationRepositoryIntegrationTestSuite))
}
