package http

import (
	"time"

	"workflow/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuthUserResponse describes the authenticated caller.
type AuthUserResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// CreateOrderRequest is the POST /api/orders body. Priority defaults to the
// standard urgency when omitted.
type CreateOrderRequest struct {
	OrderNumber string `json:"orderNumber" validate:"required,max=64"`
	Priority    *int   `json:"priority" validate:"omitempty,min=1,max=9"`
	Notes       string `json:"notes" validate:"max=500"`
}

// UpdatePriorityRequest is the PATCH /api/orders/:orderId/priority body.
type UpdatePriorityRequest struct {
	Priority int `json:"priority" validate:"required,min=1,max=9"`
}

// CompleteStageRequest is the stage completion body.
type CompleteStageRequest struct {
	ServiceTimeMinutes int64  `json:"serviceTimeMinutes" validate:"min=0"`
	Notes              string `json:"notes" validate:"max=500"`
}

// FlagExceptionRequest is the exception flagging body.
type FlagExceptionRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
	Notes  string `json:"notes" validate:"max=500"`
}

// SupervisorActionRequest is the body for approve-skip and request-rework.
type SupervisorActionRequest struct {
	SupervisorNotes string `json:"supervisorNotes" validate:"max=500"`
}

// StartConversationRequest is the POST /api/ai/conversations body.
type StartConversationRequest struct {
	Title string `json:"title" validate:"max=120"`
}

// SendMessageRequest is the conversation message body.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// StageStatus is the wire form of one pipeline stage of an order.
type StageStatus struct {
	Stage              string     `json:"stage"`
	State              string     `json:"state"`
	Assignee           *string    `json:"assignee"`
	ClaimedAt          *time.Time `json:"claimedAt"`
	StartedAt          *time.Time `json:"startedAt"`
	CompletedAt        *time.Time `json:"completedAt"`
	ServiceTimeMinutes *int64     `json:"serviceTimeMinutes"`
	Notes              *string    `json:"notes"`
	ExceptionReason    *string    `json:"exceptionReason"`
	SupervisorNotes    *string    `json:"supervisorNotes"`
	ApprovedBy         *string    `json:"approvedBy"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Order is the wire form of a full order.
type Order struct {
	ID           string        `json:"id"`
	OrderNumber  string        `json:"orderNumber"`
	Priority     int           `json:"priority"`
	CurrentStage string        `json:"currentStage"`
	OverallState string        `json:"overallState"`
	Notes        *string       `json:"notes"`
	Stages       []StageStatus `json:"stages"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// WorkQueueItem is one row of the operator queue.
type WorkQueueItem struct {
	OrderID         string     `json:"orderId"`
	OrderNumber     string     `json:"orderNumber"`
	Priority        int        `json:"priority"`
	Stage           string     `json:"stage"`
	State           string     `json:"state"`
	Assignee        *string    `json:"assignee"`
	ClaimedAt       *time.Time `json:"claimedAt"`
	ExceptionReason *string    `json:"exceptionReason"`
	OrderCreatedAt  time.Time  `json:"orderCreatedAt"`
}

// StageSummary holds per-state counts for one pipeline stage.
type StageSummary struct {
	Stage     string `json:"stage"`
	Pending   int    `json:"pending"`
	Claimed   int    `json:"claimed"`
	Exception int    `json:"exception"`
	Completed int    `json:"completed"`
	Skipped   int    `json:"skipped"`
}

// WipSummary is the supervisor work-in-progress snapshot.
type WipSummary struct {
	TotalOrders     int            `json:"totalOrders"`
	CompletedOrders int            `json:"completedOrders"`
	ExceptionOrders int            `json:"exceptionOrders"`
	Stages          []StageSummary `json:"stages"`
}

// ConversationSummary is one conversation in the list view.
type ConversationSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Message is one chat turn on the wire.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation is a full conversation with its history.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toStageStatus(status queries.StageStatusResponse) StageStatus {
	return StageStatus{
		Stage:              status.Stage.String(),
		State:              status.State.String(),
		Assignee:           optional(status.Assignee),
		ClaimedAt:          status.ClaimedAt,
		StartedAt:          status.StartedAt,
		CompletedAt:        status.CompletedAt,
		ServiceTimeMinutes: status.ServiceTimeMinutes,
		Notes:              optional(status.Notes),
		ExceptionReason:    optional(status.ExceptionReason),
		SupervisorNotes:    optional(status.SupervisorNotes),
		ApprovedBy:         optional(status.ApprovedBy),
		UpdatedAt:          status.UpdatedAt,
	}
}

func toOrder(response queries.OrderResponse) Order {
	stages := make([]StageStatus, 0, len(response.Stages))
	for _, status := range response.Stages {
		stages = append(stages, toStageStatus(status))
	}
	return Order{
		ID:           response.ID.String(),
		OrderNumber:  response.OrderNumber,
		Priority:     response.Priority,
		CurrentStage: response.CurrentStage.String(),
		OverallState: response.OverallState.String(),
		Notes:        optional(response.Notes),
		Stages:       stages,
		CreatedAt:    response.CreatedAt,
		UpdatedAt:    response.UpdatedAt,
	}
}

func toWorkQueueItem(item queries.WorkQueueItemResponse) WorkQueueItem {
	return WorkQueueItem{
		OrderID:         item.OrderID.String(),
		OrderNumber:     item.OrderNumber,
		Priority:        item.Priority,
		Stage:           item.Stage.String(),
		State:           item.State.String(),
		Assignee:        optional(item.Assignee),
		ClaimedAt:       item.ClaimedAt,
		ExceptionReason: optional(item.ExceptionReason),
		OrderCreatedAt:  item.OrderCreatedAt,
	}
}

func toWipSummary(summary queries.WipSummaryResponse) WipSummary {
	stages := make([]StageSummary, 0, len(summary.Stages))
	for _, stage := range summary.Stages {
		stages = append(stages, StageSummary{
			Stage:     stage.Stage.String(),
			Pending:   stage.Pending,
			Claimed:   stage.Claimed,
			Exception: stage.Exception,
			Completed: stage.Completed,
			Skipped:   stage.Skipped,
		})
	}
	return WipSummary{
		TotalOrders:     summary.TotalOrders,
		CompletedOrders: summary.CompletedOrders,
		ExceptionOrders: summary.ExceptionOrders,
		Stages:          stages,
	}
}

func toConversationSummary(summary queries.ConversationSummaryResponse) ConversationSummary {
	return ConversationSummary{
		ID:           summary.ID.String(),
		Title:        summary.Title,
		MessageCount: summary.MessageCount,
		CreatedAt:    summary.CreatedAt,
		UpdatedAt:    summary.UpdatedAt,
	}
}

func toConversation(response queries.ConversationResponse) Conversation {
	messages := make([]Message, 0, len(response.Messages))
	for _, message := range response.Messages {
		messages = append(messages, Message{
			ID:        message.ID.String(),
			Role:      string(message.Role),
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}
	return Conversation{
		ID:        response.ID.String(),
		Title:     response.Title,
		Messages:  messages,
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}
}
