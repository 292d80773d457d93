package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/services/markdown"
)

type ListMessagesQuery struct {
	TicketID uint
	Actor    ticket.Actor
}

// ListMessagesUseCase returns a ticket's full thread in creation order,
// with attachments resolved onto their messages and text bodies rendered to
// sanitized HTML. The sequence is append-only, so polling it is idempotent.
type ListMessagesUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	renderer       markdown.MarkdownService
	logger         logger.Interface
}

func NewListMessagesUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, query ListMessagesQuery) ([]*dto.MessageDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	if !query.Actor.IsElevated() && t.CreatorID() != query.Actor.ID && !t.IsAssignedTo(query.Actor.ID) {
		return nil, errors.NewForbiddenError("not allowed to view this ticket's thread")
	}

	messages, err := uc.messageRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load messages", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	byMessage := make(map[uint][]dto.AttachmentDTO)
	for _, a := range attachments {
		if a.MessageID() == nil {
			continue
		}
		byMessage[*a.MessageID()] = append(byMessage[*a.MessageID()], *dto.ToAttachmentDTO(a))
	}

	items := make([]*dto.MessageDTO, len(messages))
	for i, m := range messages {
		item := dto.ToMessageDTO(m)
		item.Attachments = byMessage[m.ID()]

		if m.Type() == vo.MessageTypeText {
			rendered, err := uc.renderer.ToHTMLSanitized(m.Body())
			if err != nil {
				uc.logger.Warnw("failed to render message body",
					"message_id", m.ID(), "error", err)
			} else {
				item.BodyHTML = rendered
			}
		}

		items[i] = item
	}

	return items, nil
}
