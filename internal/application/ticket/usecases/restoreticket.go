package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type RestoreTicketCommand struct {
	TicketID uint
	Actor    ticket.Actor
}

// RestoreTicketUseCase moves a closed or deleted ticket back to waiting. The
// edge table restricts it to those two source states.
type RestoreTicketUseCase struct {
	deps     transitionDeps
	notifier Notifier
	logger   logger.Interface
}

func NewRestoreTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *RestoreTicketUseCase {
	return &RestoreTicketUseCase{
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

func (uc *RestoreTicketUseCase) Execute(ctx context.Context, cmd RestoreTicketCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing restore ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

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

	oldStatus := t.Status()
	now := biztime.NowUTC()

	if err := applyStatusTransition(ctx, uc.deps, t, cmd.Actor, nil, vo.StatusWaiting, nil, now); err != nil {
		uc.logger.Errorw("failed to restore ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.notifier.StatusChanged(ctx, ticket.NewTicketStatusChangedEvent(
		t.ID(), t.Number(), oldStatus.String(), t.Status().String(), cmd.Actor.ID, now,
	))

	uc.logger.Infow("ticket restored successfully", "ticket_id", cmd.TicketID, "from", oldStatus)

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		Version:   t.Version(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}
