package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	Actor    ticket.Actor
}

// CloseTicketUseCase is a named wrapper over the status transition with the
// fixed target closed, gated by the stricter close capability.
type CloseTicketUseCase struct {
	deps     transitionDeps
	notifier Notifier
	logger   logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		deps: transitionDeps{
			ticketRepo:    ticketRepo,
			messageRepo:   messageRepo,
			changeLogRepo: changeLogRepo,
			txManager:     txManager,
		},
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing close ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	t, err := uc.deps.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !ticket.CanClose(cmd.Actor, t) {
		return nil, errors.NewForbiddenError("not allowed to close this ticket")
	}

	oldStatus := t.Status()
	now := biztime.NowUTC()

	if err := applyStatusTransition(ctx, uc.deps, t, cmd.Actor, nil, vo.StatusClosed, nil, now); err != nil {
		uc.logger.Errorw("failed to close ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.notifier.StatusChanged(ctx, ticket.NewTicketStatusChangedEvent(
		t.ID(), t.Number(), oldStatus.String(), t.Status().String(), cmd.Actor.ID, now,
	))

	uc.logger.Infow("ticket closed successfully", "ticket_id", cmd.TicketID)

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		Version:   t.Version(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}
