package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/persistence/models"
)

// TicketChangeLogMapper handles the conversion between ChangeLogEntry domain entities and persistence models.
type TicketChangeLogMapper interface {
	ToModel(e *ticket.ChangeLogEntry) (*models.TicketChangeLogModel, error)
	ToDomain(model *models.TicketChangeLogModel) (*ticket.ChangeLogEntry, error)
}

type TicketChangeLogMapperImpl struct{}

func NewTicketChangeLogMapper() TicketChangeLogMapper {
	return &TicketChangeLogMapperImpl{}
}

func (m *TicketChangeLogMapperImpl) ToModel(e *ticket.ChangeLogEntry) (*models.TicketChangeLogModel, error) {
	model := &models.TicketChangeLogModel{
		ID:               e.ID(),
		TicketID:         e.TicketID(),
		UserID:           e.UserID(),
		PreviousStatus:   e.PreviousStatus().String(),
		NewStatus:        e.NewStatus().String(),
		PreviousPriority: e.PreviousPriority().String(),
		NewPriority:      e.NewPriority().String(),
		PreviousCategory: e.PreviousCategory().String(),
		NewCategory:      e.NewCategory().String(),
		ChangeType:       e.ChangeType().String(),
		CreatedAt:        e.CreatedAt().UnixMilli(),
	}

	if meta := e.Meta(); len(meta) > 0 {
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal change log meta (ticket_id=%d): %w", e.TicketID(), err)
		}
		model.Meta = datatypes.JSON(metaJSON)
	}

	return model, nil
}

func (m *TicketChangeLogMapperImpl) ToDomain(model *models.TicketChangeLogModel) (*ticket.ChangeLogEntry, error) {
	previousStatus, err := vo.NewTicketStatus(model.PreviousStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid previous status (id=%d): %w", model.ID, err)
	}
	newStatus, err := vo.NewTicketStatus(model.NewStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid new status (id=%d): %w", model.ID, err)
	}
	previousPriority, err := vo.NewPriority(model.PreviousPriority)
	if err != nil {
		return nil, fmt.Errorf("invalid previous priority (id=%d): %w", model.ID, err)
	}
	newPriority, err := vo.NewPriority(model.NewPriority)
	if err != nil {
		return nil, fmt.Errorf("invalid new priority (id=%d): %w", model.ID, err)
	}
	previousCategory, err := vo.NewCategory(model.PreviousCategory)
	if err != nil {
		return nil, fmt.Errorf("invalid previous category (id=%d): %w", model.ID, err)
	}
	newCategory, err := vo.NewCategory(model.NewCategory)
	if err != nil {
		return nil, fmt.Errorf("invalid new category (id=%d): %w", model.ID, err)
	}
	changeType, err := vo.NewChangeType(model.ChangeType)
	if err != nil {
		return nil, fmt.Errorf("invalid change type (id=%d): %w", model.ID, err)
	}

	var meta map[string]string
	if len(model.Meta) > 0 {
		if err := json.Unmarshal(model.Meta, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal change log meta (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructChangeLogEntry(
		model.ID,
		model.TicketID,
		model.UserID,
		previousStatus,
		newStatus,
		previousPriority,
		newPriority,
		previousCategory,
		newCategory,
		changeType,
		meta,
		millisToTime(model.CreatedAt),
	)
}
