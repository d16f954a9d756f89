// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique index so duplicate registrations are
// rejected at the database level as well.
type OrderDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderNumber string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	Priority    int              `gorm:"type:int;not null;index"`
	Notes       string           `gorm:"type:text"`
	Stages      []StageStatusDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StageStatusDTO represents one pipeline stage row of an order. Stage and
// state are stored under their wire names so ad-hoc SQL stays readable.
type StageStatusDTO struct {
	OrderID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Stage              string     `gorm:"type:varchar(16);primaryKey"`
	State              string     `gorm:"type:varchar(16);not null;index"`
	Assignee           string     `gorm:"type:varchar(255)"`
	ClaimedAt          *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	ServiceTimeMinutes *int64     `gorm:"type:bigint"`
	Notes              string     `gorm:"type:text"`
	ExceptionReason    string     `gorm:"type:varchar(500)"`
	SupervisorNotes    string     `gorm:"type:varchar(500)"`
	ApprovedBy         string     `gorm:"type:varchar(255)"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for stage status entities.
// Overrides GORM's default naming convention to use "order_stages".
func (StageStatusDTO) TableName() string {
	return "order_stages"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the aggregate with one row per pipeline stage.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	stages := make([]StageStatusDTO, 0, len(aggregate.Stages()))

	for _, status := range aggregate.Stages() {
		stages = append(stages, StageStatusDTO{
			OrderID:            orderID,
			Stage:              status.Stage().String(),
			State:              status.State().String(),
			Assignee:           status.Assignee(),
			ClaimedAt:          status.ClaimedAt(),
			StartedAt:          status.StartedAt(),
			CompletedAt:        status.CompletedAt(),
			ServiceTimeMinutes: status.ServiceTimeMinutes(),
			Notes:              status.Notes(),
			ExceptionReason:    status.ExceptionReason(),
			SupervisorNotes:    status.SupervisorNotes(),
			ApprovedBy:         status.ApprovedBy(),
			UpdatedAt:          status.UpdatedAt(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		OrderNumber: aggregate.OrderNumber(),
		Priority:    aggregate.Priority(),
		Notes:       aggregate.Notes(),
		Stages:      stages,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including all stage rows using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stages := make([]*order.StageStatus, 0, len(dto.Stages))
	for _, stageDto := range dto.Stages {
		status, stageErr := stageToDomain(stageDto)
		if stageErr != nil {
			return nil, stageErr
		}
		stages = append(stages, status)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.Priority,
		dto.Notes,
		dto.CreatedAt,
		dto.UpdatedAt,
		stages,
	)
}

// stageToDomain converts a stage status DTO to its domain entity.
func stageToDomain(dto StageStatusDTO) (*order.StageStatus, error) {
	stage, err := order.ParseStageKind(dto.Stage)
	if err != nil {
		return nil, err
	}

	state, err := order.ParseStageState(dto.State)
	if err != nil {
		return nil, err
	}

	return order.RestoreStageStatus(
		stage,
		state,
		dto.Assignee,
		dto.ClaimedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.ServiceTimeMinutes,
		dto.Notes,
		dto.ExceptionReason,
		dto.SupervisorNotes,
		dto.ApprovedBy,
		dto.UpdatedAt,
	)
}
