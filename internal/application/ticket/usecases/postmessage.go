package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/utils/logutil"
)

type PostMessageCommand struct {
	TicketID uint
	Body     string
	Actor    ticket.Actor
}

// PostMessageUseCase appends a text message to a ticket's thread. Posting
// never alters the ticket's status.
type PostMessageUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	notifier    Notifier
	logger      logger.Interface
}

func NewPostMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	notifier Notifier,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*dto.MessageDTO, error) {
	uc.logger.Infow("executing post message use case",
		"ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID,
		"body_preview", logutil.TruncateForLog(cmd.Body, 80))

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !ticket.CanReply(cmd.Actor, t) {
		return nil, errors.NewForbiddenError("not allowed to reply to this ticket")
	}

	now := biztime.NowUTC()

	msg, err := ticket.NewTextMessage(cmd.TicketID, cmd.Actor.ID, cmd.Body, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.messageRepo.Save(ctx, msg); err != nil {
		uc.logger.Errorw("failed to save message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.notifier.MessagePosted(ctx, ticket.NewMessagePostedEvent(
		cmd.TicketID, msg.ID(), cmd.Actor.ID, now,
	))

	uc.logger.Infow("message posted successfully",
		"ticket_id", cmd.TicketID, "message_id", msg.ID())

	return dto.ToMessageDTO(msg), nil
}
