package convrepo

import (
	"context"
	"errors"

	"workflow/internal/core/domain/model/conversation"
	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormConversationRepository implements ConversationRepository using GORM.
type GormConversationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConversationRepository creates a new GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB, tracker aggregateTracker) *GormConversationRepository {
	return &GormConversationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new conversation to the database.
func (r *GormConversationRepository) Add(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing conversation, appended messages included.
func (r *GormConversationRepository) Update(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to persist new message rows
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a conversation by ID with messages preloaded in
// chronological order.
func (r *GormConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conversation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByUser retrieves a user's conversations, newest first.
func (r *GormConversationRepository) GetAllByUser(ctx context.Context, createdBy string) ([]*conversation.Conversation, error) {
	var dtos []ConversationDTO
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("updated_at DESC").
		Find(&dtos, "created_by = ?", createdBy).Error
	if err != nil {
		return nil, err
	}

	conversations := make([]*conversation.Conversation, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		conversations = append(conversations, c)
	}

	return conversations, nil
}

// Delete removes a conversation; message rows go with it via the cascade.
func (r *GormConversationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ConversationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("conversation", id.String())
	}

	return nil
}
