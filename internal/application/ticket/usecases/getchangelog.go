package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type GetChangeLogQuery struct {
	TicketID uint
	Actor    ticket.Actor
}

// GetChangeLogUseCase returns the ordered audit trail of a ticket.
// Non-elevated viewers pass the same creator/assignee gate as the other read
// paths. Elevated viewers read the change-log table directly without loading
// the ticket row, so the history of a purged ticket stays readable to them.
type GetChangeLogUseCase struct {
	ticketRepo    ticket.TicketRepository
	changeLogRepo ticket.ChangeLogRepository
	logger        logger.Interface
}

func NewGetChangeLogUseCase(
	ticketRepo ticket.TicketRepository,
	changeLogRepo ticket.ChangeLogRepository,
	logger logger.Interface,
) *GetChangeLogUseCase {
	return &GetChangeLogUseCase{
		ticketRepo:    ticketRepo,
		changeLogRepo: changeLogRepo,
		logger:        logger,
	}
}

func (uc *GetChangeLogUseCase) Execute(ctx context.Context, query GetChangeLogQuery) ([]*dto.ChangeLogDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	if !query.Actor.IsElevated() {
		t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
		if err != nil {
			return nil, err
		}
		if t.CreatorID() != query.Actor.ID && !t.IsAssignedTo(query.Actor.ID) && !t.Status().IsNew() {
			return nil, errors.NewForbiddenError("not allowed to view this ticket")
		}
	}

	entries, err := uc.changeLogRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load change log", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	items := make([]*dto.ChangeLogDTO, len(entries))
	for i, e := range entries {
		items[i] = dto.ToChangeLogDTO(e)
	}

	return items, nil
}
