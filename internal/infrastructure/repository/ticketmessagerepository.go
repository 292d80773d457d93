package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	db "crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
)

type TicketMessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMessageMapper
}

func NewTicketMessageRepository(db *gorm.DB) *TicketMessageRepository {
	return &TicketMessageRepository{
		db:     db,
		mapper: mappers.NewTicketMessageMapper(),
	}
}

func (r *TicketMessageRepository) Save(ctx context.Context, msg *ticket.Message) error {
	model := r.mapper.ToModel(msg)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket message: %w", err)
	}

	if err := msg.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketMessageRepository) GetByID(ctx context.Context, messageID uint) (*ticket.Message, error) {
	var model models.TicketMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("message not found")
		}
		return nil, fmt.Errorf("failed to find ticket message: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// GetByTicketID returns the full thread in creation order, ID as tiebreaker
// so replays of the same thread always come back in the same sequence.
func (r *TicketMessageRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var messageModels []models.TicketMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}

	messages := make([]*ticket.Message, len(messageModels))
	for i := range messageModels {
		msg, err := r.mapper.ToDomain(&messageModels[i])
		if err != nil {
			return nil, err
		}
		messages[i] = msg
	}

	return messages, nil
}

// LatestByTicketID returns the newest message of the thread, or nil for an
// empty thread.
func (r *TicketMessageRepository) LatestByTicketID(ctx context.Context, ticketID uint) (*ticket.Message, error) {
	var model models.TicketMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC, id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest ticket message: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketMessageRepository) SetHasAttachments(ctx context.Context, messageID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketMessageModel{}).
		Where("id = ?", messageID).
		Update("has_attachments", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark message attachments: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("message not found")
	}

	return nil
}

func (r *TicketMessageRepository) PurgeByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Delete(&models.TicketMessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to purge ticket messages: %w", err)
	}

	return nil
}
