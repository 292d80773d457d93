package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Actor    ticket.Actor
}

type GetTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	logger      logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	if !query.Actor.IsElevated() && t.CreatorID() != query.Actor.ID && !t.IsAssignedTo(query.Actor.ID) && !t.Status().IsNew() {
		return nil, errors.NewForbiddenError("not allowed to view this ticket")
	}

	result := dto.ToTicketDTO(t)

	latest, err := uc.messageRepo.LatestByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Warnw("failed to load latest message for unread flag",
			"ticket_id", query.TicketID, "error", err)
	} else if latest != nil {
		latestAt := latest.CreatedAt()
		result.Unread = t.UnreadFor(query.Actor.ID, &latestAt)
	}

	return result, nil
}
