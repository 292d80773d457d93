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

type TicketAttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketAttachmentMapper
}

func NewTicketAttachmentRepository(db *gorm.DB) *TicketAttachmentRepository {
	return &TicketAttachmentRepository{
		db:     db,
		mapper: mappers.NewTicketAttachmentMapper(),
	}
}

func (r *TicketAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	var model models.TicketAttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("attachment not found")
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var attachmentModels []models.TicketAttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		a, err := r.mapper.ToDomain(&attachmentModels[i])
		if err != nil {
			return nil, err
		}
		attachments[i] = a
	}

	return attachments, nil
}

func (r *TicketAttachmentRepository) CountByMessageID(ctx context.Context, messageID uint) (int, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.TicketAttachmentModel{}).
		Where("message_id = ?", messageID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}

	return int(count), nil
}

func (r *TicketAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.TicketAttachmentModel{}, attachmentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("attachment not found")
	}

	return nil
}

func (r *TicketAttachmentRepository) PurgeByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Delete(&models.TicketAttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to purge attachments: %w", err)
	}

	return nil
}
