package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/constants"
	db "crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]bool{
	"id":          true,
	"number":      true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"category":    true,
	"contract_id": true,
	"creator_id":  true,
	"assignee_id": true,
	"created_at":  true,
	"updated_at":  true,
}

// archivableStatusColumns maps a sweepable status to the lifecycle timestamp
// column that determines its retention age.
var archivableStatusColumns = map[string]string{
	vo.StatusResolved.String(): "resolved_at",
	vo.StatusClosed.String():   "closed_at",
	vo.StatusDeleted.String():  "deleted_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

// Update writes the ticket guarded by its optimistic version: the row is only
// touched when the stored version still equals the version the entity was
// loaded with. A stale write returns a conflict error without modifying the
// row. Updates go through an explicit column map because nullable lifecycle
// timestamps must be written even when cleared to NULL (reopen and restore).
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"title":                 model.Title,
		"description":           model.Description,
		"status":                model.Status,
		"previous_status":       model.PreviousStatus,
		"priority":              model.Priority,
		"category":              model.Category,
		"assignee_id":           model.AssigneeID,
		"resolved_at":           model.ResolvedAt,
		"closed_at":             model.ClosedAt,
		"deleted_at":            model.DeletedAt,
		"restored_at":           model.RestoredAt,
		"creator_last_read_at":  model.CreatorLastReadAt,
		"assignee_last_read_at": model.AssigneeLastReadAt,
		"version":               model.Version,
		"updated_at":            model.UpdatedAt,
	}

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, t.LoadedVersion()).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError(constants.ErrMsgConflict)
	}

	return nil
}

// Purge permanently removes the ticket row. Change-log rows are left alone;
// the terminal audit entry must outlive the ticket.
func (r *TicketRepository) Purge(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.TicketModel{}, ticketID)
	if result.Error != nil {
		return fmt.Errorf("failed to purge ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(
	ctx context.Context,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.ContractID != nil {
		query = query.Where("contract_id = ?", *filter.ContractID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedTicketOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

// ListArchivable returns tickets sitting in the given status whose lifecycle
// timestamp is at or before cutoff, oldest first. Only resolved, closed, and
// deleted have a retention clock.
func (r *TicketRepository) ListArchivable(
	ctx context.Context,
	status vo.TicketStatus,
	cutoff time.Time,
	limit int,
) ([]*ticket.Ticket, error) {
	column, ok := archivableStatusColumns[status.String()]
	if !ok {
		return nil, fmt.Errorf("status %s has no retention timestamp", status)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Where("status = ?", status.String()).
		Where(column+" IS NOT NULL AND "+column+" <= ?", cutoff.UnixMilli()).
		Order(column + " ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list archivable tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}

	return tickets, nil
}
