package mappers

import (
	"fmt"
	"time"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:             t.ID(),
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		PreviousStatus: t.PreviousStatus().String(),
		Priority:       t.Priority().String(),
		Category:       t.Category().String(),
		ContractID:     t.ContractID(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		ResolvedAt:     timeToMillisPtr(t.ResolvedAt()),
		ClosedAt:       timeToMillisPtr(t.ClosedAt()),
		DeletedAt:      timeToMillisPtr(t.DeletedAt()),
		RestoredAt:     timeToMillisPtr(t.RestoredAt()),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
	}

	model.CreatorLastReadAt = timeToMillisPtr(t.CreatorLastReadAt())
	model.AssigneeLastReadAt = timeToMillisPtr(t.AssigneeLastReadAt())

	return model
}

// ToDomain converts a ticket persistence model to a domain entity.
// Messages, attachments, and change-log rows are loaded separately by their repositories.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket status (id=%d): %w", model.ID, err)
	}
	previousStatus, err := vo.NewTicketStatus(model.PreviousStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid previous ticket status (id=%d): %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket priority (id=%d): %w", model.ID, err)
	}
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket category (id=%d): %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		status,
		previousStatus,
		priority,
		category,
		model.ContractID,
		model.CreatorID,
		model.AssigneeID,
		millisToTimePtr(model.ResolvedAt),
		millisToTimePtr(model.ClosedAt),
		millisToTimePtr(model.DeletedAt),
		millisToTimePtr(model.RestoredAt),
		millisToTimePtr(model.CreatorLastReadAt),
		millisToTimePtr(model.AssigneeLastReadAt),
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func millisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}

func millisToTimePtr(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := millisToTime(*millis)
	return &t
}

func timeToMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
