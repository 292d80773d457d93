package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	db "crmdesk/internal/shared/db"
)

// TicketChangeLogRepository is append-only. There is no update or delete path;
// audit rows survive the purge of their ticket.
type TicketChangeLogRepository struct {
	db     *gorm.DB
	mapper mappers.TicketChangeLogMapper
}

func NewTicketChangeLogRepository(db *gorm.DB) *TicketChangeLogRepository {
	return &TicketChangeLogRepository{
		db:     db,
		mapper: mappers.NewTicketChangeLogMapper(),
	}
}

func (r *TicketChangeLogRepository) Append(ctx context.Context, entry *ticket.ChangeLogEntry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append change log entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketChangeLogRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.ChangeLogEntry, error) {
	var entryModels []models.TicketChangeLogModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list change log entries: %w", err)
	}

	entries := make([]*ticket.ChangeLogEntry, len(entryModels))
	for i := range entryModels {
		e, err := r.mapper.ToDomain(&entryModels[i])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	return entries, nil
}
