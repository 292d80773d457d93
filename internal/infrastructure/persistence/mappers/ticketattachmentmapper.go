package mappers

import (
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/models"
)

// TicketAttachmentMapper handles the conversion between Attachment domain entities and persistence models.
type TicketAttachmentMapper interface {
	ToModel(a *ticket.Attachment) *models.TicketAttachmentModel
	ToDomain(model *models.TicketAttachmentModel) (*ticket.Attachment, error)
}

type TicketAttachmentMapperImpl struct{}

func NewTicketAttachmentMapper() TicketAttachmentMapper {
	return &TicketAttachmentMapperImpl{}
}

func (m *TicketAttachmentMapperImpl) ToModel(a *ticket.Attachment) *models.TicketAttachmentModel {
	return &models.TicketAttachmentModel{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		MessageID:    a.MessageID(),
		UserID:       a.UserID(),
		FileName:     a.FileName(),
		OriginalName: a.OriginalName(),
		FilePath:     a.FilePath(),
		FileSize:     a.FileSize(),
		MimeType:     a.MimeType(),
		ContentHash:  a.ContentHash(),
		CreatedAt:    a.CreatedAt().UnixMilli(),
	}
}

func (m *TicketAttachmentMapperImpl) ToDomain(model *models.TicketAttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.MessageID,
		model.UserID,
		model.FileName,
		model.OriginalName,
		model.FilePath,
		model.FileSize,
		model.MimeType,
		model.ContentHash,
		millisToTime(model.CreatedAt),
	)
}
