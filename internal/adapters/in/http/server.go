// Package http exposes the workflow over an Echo HTTP API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"strings"

	"workflow/internal/core/application/usecases/commands"
	"workflow/internal/core/application/usecases/queries"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"
	"workflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder        commands.CreateOrderCommandHandler
	ClaimStage         commands.ClaimStageCommandHandler
	CompleteStage      commands.CompleteStageCommandHandler
	FlagException      commands.FlagExceptionCommandHandler
	ApproveSkip        commands.ApproveSkipCommandHandler
	RequestRework      commands.RequestReworkCommandHandler
	UpdatePriority     commands.UpdatePriorityCommandHandler
	StartConversation  commands.StartConversationCommandHandler
	SendMessage        commands.SendMessageCommandHandler
	DeleteConversation commands.DeleteConversationCommandHandler

	// Query handlers
	GetOrder         queries.GetOrderQueryHandler
	GetAllOrders     queries.GetAllOrdersQueryHandler
	GetWorkQueue     queries.GetWorkQueueQueryHandler
	GetWipSummary    queries.GetWipSummaryQueryHandler
	GetConversations queries.GetConversationsQueryHandler
	GetConversation  queries.GetConversationQueryHandler
}

// Server implements the HTTP endpoints of the workflow tracker.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes wires all endpoints onto the Echo instance. Everything but
// the health check requires basic auth; supervisor endpoints additionally
// require the SUPERVISOR role.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *Authenticator) {
	e.Validator = NewCustomValidator()

	e.GET("/health", s.Health)

	authed := e.Group("", auth.Middleware())
	authed.GET("/auth/me", s.Me)

	api := authed.Group("/api")
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.PATCH("/orders/:orderId/priority", s.UpdatePriority)

	operator := api.Group("/operator")
	operator.GET("/queue", s.GetWorkQueue)
	operator.POST("/orders/:orderId/stages/:stage/claim", s.ClaimStage)
	operator.POST("/orders/:orderId/stages/:stage/complete", s.CompleteStage)
	operator.POST("/orders/:orderId/stages/:stage/flag-exception", s.FlagException)

	supervisor := api.Group("/supervisor", RequireRole(RoleSupervisor))
	supervisor.GET("/wip", s.GetWipSummary)
	supervisor.POST("/orders/:orderId/stages/:stage/approve-skip", s.ApproveSkip)
	supervisor.POST("/orders/:orderId/stages/:stage/request-rework", s.RequestRework)

	ai := api.Group("/ai")
	ai.GET("/conversations", s.GetConversations)
	ai.POST("/conversations", s.StartConversation)
	ai.GET("/conversations/:conversationId", s.GetConversation)
	ai.POST("/conversations/:conversationId/messages", s.SendMessage)
	ai.DELETE("/conversations/:conversationId", s.DeleteConversation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Me handles GET /auth/me - returns the authenticated identity.
func (s *Server) Me(ctx echo.Context) error {
	user, ok := CurrentUser(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated",
		})
	}
	return ctx.JSON(http.StatusOK, AuthUserResponse{
		Username: user.Name,
		Roles:    []string{user.Role},
	})
}

// GetOrders handles GET /api/orders - all orders sorted by urgency.
func (s *Server) GetOrders(ctx echo.Context) error {
	responses, err := s.handlers.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	out := make([]Order, 0, len(responses))
	for _, response := range responses {
		out = append(out, toOrder(response))
	}
	return ctx.JSON(http.StatusOK, out)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}

	priority := order.DefaultPriority
	if request.Priority != nil {
		priority = *request.Priority
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.OrderNumber, priority, request.Notes)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderId")
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// UpdatePriority handles PATCH /api/orders/:orderId/priority.
func (s *Server) UpdatePriority(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderId")
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request UpdatePriorityRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdatePriorityCommand(orderID, request.Priority)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.UpdatePriority.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetWorkQueue handles GET /api/operator/queue with optional stage, states
// and assignee filters.
func (s *Server) GetWorkQueue(ctx echo.Context) error {
	var stageFilter *order.StageKind
	if raw := strings.TrimSpace(ctx.QueryParam("stage")); raw != "" {
		stage, err := order.ParseStageKind(raw)
		if err != nil {
			return s.errorResponse(ctx, err)
		}
		stageFilter = &stage
	}

	var stateFilters []order.StageState
	if raw := strings.TrimSpace(ctx.QueryParam("states")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			state, err := order.ParseStageState(strings.TrimSpace(part))
			if err != nil {
				return s.errorResponse(ctx, err)
			}
			stateFilters = append(stateFilters, state)
		}
	}

	query, err := queries.NewGetWorkQueueQuery(stageFilter, stateFilters, strings.TrimSpace(ctx.QueryParam("assignee")))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	items, err := s.handlers.GetWorkQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	out := make([]WorkQueueItem, 0, len(items))
	for _, item := range items {
		out = append(out, toWorkQueueItem(item))
	}
	return ctx.JSON(http.StatusOK, out)
}

// ClaimStage handles POST /api/operator/orders/:orderId/stages/:stage/claim.
// The authenticated username becomes the assignee.
func (s *Server) ClaimStage(ctx echo.Context) error {
	orderID, stage, err := s.orderStageParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewClaimStageCommand(orderID, stage, user.Name)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.ClaimStage.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// CompleteStage handles POST /api/operator/orders/:orderId/stages/:stage/complete.
func (s *Server) CompleteStage(ctx echo.Context) error {
	orderID, stage, err := s.orderStageParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request CompleteStageRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewCompleteStageCommand(orderID, stage, user.Name, request.ServiceTimeMinutes, request.Notes)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.CompleteStage.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// FlagException handles POST /api/operator/orders/:orderId/stages/:stage/flag-exception.
func (s *Server) FlagException(ctx echo.Context) error {
	orderID, stage, err := s.orderStageParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request FlagExceptionRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewFlagExceptionCommand(orderID, stage, user.Name, request.Reason, request.Notes)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.FlagException.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetWipSummary handles GET /api/supervisor/wip.
func (s *Server) GetWipSummary(ctx echo.Context) error {
	summary, err := s.handlers.GetWipSummary.Handle(ctx.Request().Context(), queries.NewGetWipSummaryQuery())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toWipSummary(summary))
}

// ApproveSkip handles POST /api/supervisor/orders/:orderId/stages/:stage/approve-skip.
func (s *Server) ApproveSkip(ctx echo.Context) error {
	orderID, stage, err := s.orderStageParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request SupervisorActionRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewApproveSkipCommand(orderID, stage, user.Name, request.SupervisorNotes)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.ApproveSkip.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// RequestRework handles POST /api/supervisor/orders/:orderId/stages/:stage/request-rework.
func (s *Server) RequestRework(ctx echo.Context) error {
	orderID, stage, err := s.orderStageParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request SupervisorActionRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewRequestReworkCommand(orderID, stage, user.Name, request.SupervisorNotes)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.RequestRework.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetConversations handles GET /api/ai/conversations - the caller's
// conversations, most recently touched first.
func (s *Server) GetConversations(ctx echo.Context) error {
	user, _ := CurrentUser(ctx)

	query, err := queries.NewGetConversationsQuery(user.Name)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	summaries, err := s.handlers.GetConversations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	out := make([]ConversationSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toConversationSummary(summary))
	}
	return ctx.JSON(http.StatusOK, out)
}

// StartConversation handles POST /api/ai/conversations.
func (s *Server) StartConversation(ctx echo.Context) error {
	var request StartConversationRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	conversationID := kernel.NewUUID()
	cmd, err := commands.NewStartConversationCommand(conversationID, user.Name, request.Title)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.StartConversation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return s.respondWithConversation(ctx, http.StatusCreated, conversationID, user.Name)
}

// GetConversation handles GET /api/ai/conversations/:conversationId.
func (s *Server) GetConversation(ctx echo.Context) error {
	conversationID, err := s.uuidParam(ctx, "conversationId")
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)
	return s.respondWithConversation(ctx, http.StatusOK, conversationID, user.Name)
}

// SendMessage handles POST /api/ai/conversations/:conversationId/messages.
// Returns the assistant reply.
func (s *Server) SendMessage(ctx echo.Context) error {
	conversationID, err := s.uuidParam(ctx, "conversationId")
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	var request SendMessageRequest
	if err := s.bind(ctx, &request); err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewSendMessageCommand(conversationID, user.Name, request.Content)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	reply, err := s.handlers.SendMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Message{
		ID:        reply.ID().String(),
		Role:      string(reply.Role()),
		Content:   reply.Content(),
		CreatedAt: reply.CreatedAt(),
	})
}

// DeleteConversation handles DELETE /api/ai/conversations/:conversationId.
func (s *Server) DeleteConversation(ctx echo.Context) error {
	conversationID, err := s.uuidParam(ctx, "conversationId")
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	user, _ := CurrentUser(ctx)

	cmd, err := commands.NewDeleteConversationCommand(conversationID, user.Name)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.handlers.DeleteConversation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(status, toOrder(response))
}

func (s *Server) respondWithConversation(ctx echo.Context, status int, conversationID kernel.UUID, requestedBy string) error {
	query, err := queries.NewGetConversationQuery(conversationID, requestedBy)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	response, err := s.handlers.GetConversation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(status, toConversation(response))
}

func (s *Server) bind(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestBody", err)
	}
	if err := ctx.Validate(request); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestBody", err)
	}
	return nil
}

func (s *Server) uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func (s *Server) orderStageParams(ctx echo.Context) (kernel.UUID, order.StageKind, error) {
	orderID, err := s.uuidParam(ctx, "orderId")
	if err != nil {
		return kernel.UUID{}, order.UnknownStage, err
	}
	stage, err := order.ParseStageKind(ctx.Param("stage"))
	if err != nil {
		return kernel.UUID{}, order.UnknownStage, err
	}
	return orderID, stage, nil
}

func (s *Server) errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrDuplicateKey), errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}
