// Package convrepo provides data transfer objects and mapping functions for
// conversation persistence. Implements the repository pattern for the
// assistant conversation aggregate.
package convrepo

import (
	"time"

	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConversationDTO represents the database structure for persisting
// conversation aggregates.
type ConversationDTO struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CreatedBy string       `gorm:"type:varchar(255);not null;index"`
	Title     string       `gorm:"type:varchar(120);not null"`
	Messages  []MessageDTO `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

// TableName specifies the database table name for conversation entities.
func (ConversationDTO) TableName() string {
	return "conversations"
}

// MessageDTO represents one chat turn row.
type MessageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role           string    `gorm:"type:varchar(16);not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for message entities.
func (MessageDTO) TableName() string {
	return "conversation_messages"
}

// fromDomain converts a conversation aggregate to its database representation.
func fromDomain(aggregate *conversation.Conversation) ConversationDTO {
	conversationID := aggregate.ID().Bytes()
	messages := make([]MessageDTO, 0, len(aggregate.Messages()))

	for _, message := range aggregate.Messages() {
		messages = append(messages, MessageDTO{
			ID:             message.ID().Bytes(),
			ConversationID: conversationID,
			Role:           string(message.Role()),
			Content:        message.Content(),
			CreatedAt:      message.CreatedAt(),
		})
	}

	return ConversationDTO{
		ID:        conversationID,
		CreatedBy: aggregate.CreatedBy(),
		Title:     aggregate.Title(),
		Messages:  messages,
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a conversation aggregate.
func toDomain(dto ConversationDTO) (*conversation.Conversation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	messages := make([]*conversation.Message, 0, len(dto.Messages))
	for _, messageDto := range dto.Messages {
		message, messageErr := messageToDomain(messageDto)
		if messageErr != nil {
			return nil, messageErr
		}
		messages = append(messages, message)
	}

	return conversation.RestoreConversation(
		id,
		dto.CreatedBy,
		dto.Title,
		dto.CreatedAt,
		dto.UpdatedAt,
		messages,
	)
}

func messageToDomain(dto MessageDTO) (*conversation.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return conversation.RestoreMessage(id, conversation.Role(dto.Role), dto.Content, dto.CreatedAt)
}
