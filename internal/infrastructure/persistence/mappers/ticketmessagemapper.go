package mappers

import (
	"fmt"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/persistence/models"
)

// TicketMessageMapper handles the conversion between Message domain entities and persistence models.
type TicketMessageMapper interface {
	ToModel(msg *ticket.Message) *models.TicketMessageModel
	ToDomain(model *models.TicketMessageModel) (*ticket.Message, error)
}

type TicketMessageMapperImpl struct{}

func NewTicketMessageMapper() TicketMessageMapper {
	return &TicketMessageMapperImpl{}
}

func (m *TicketMessageMapperImpl) ToModel(msg *ticket.Message) *models.TicketMessageModel {
	model := &models.TicketMessageModel{
		ID:             msg.ID(),
		TicketID:       msg.TicketID(),
		UserID:         msg.UserID(),
		Body:           msg.Body(),
		MessageType:    msg.Type().String(),
		HasAttachments: msg.HasAttachments(),
		CreatedAt:      msg.CreatedAt().UnixMilli(),
	}

	if old := msg.OldStatus(); old != nil {
		s := old.String()
		model.OldStatus = &s
	}
	if next := msg.NewStatus(); next != nil {
		s := next.String()
		model.NewStatus = &s
	}

	return model
}

func (m *TicketMessageMapperImpl) ToDomain(model *models.TicketMessageModel) (*ticket.Message, error) {
	messageType, err := vo.NewMessageType(model.MessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid message type (id=%d): %w", model.ID, err)
	}

	var oldStatus, newStatus *vo.TicketStatus
	if model.OldStatus != nil {
		s, err := vo.NewTicketStatus(*model.OldStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid old status on message (id=%d): %w", model.ID, err)
		}
		oldStatus = &s
	}
	if model.NewStatus != nil {
		s, err := vo.NewTicketStatus(*model.NewStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid new status on message (id=%d): %w", model.ID, err)
		}
		newStatus = &s
	}

	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Body,
		messageType,
		model.HasAttachments,
		oldStatus,
		newStatus,
		millisToTime(model.CreatedAt),
	)
}
