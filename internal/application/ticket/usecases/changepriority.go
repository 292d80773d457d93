package usecases

import (
	"context"
	"time"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type ChangePriorityCommand struct {
	TicketID uint
	Priority vo.Priority
	Actor    ticket.Actor
}

type ChangePriorityResult struct {
	TicketID    uint      `json:"ticket_id"`
	OldPriority string    `json:"old_priority"`
	NewPriority string    `json:"new_priority"`
	Version     int       `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChangePriorityUseCase struct {
	ticketRepo    ticket.TicketRepository
	changeLogRepo ticket.ChangeLogRepository
	txManager     TransactionManager
	notifier      Notifier
	logger        logger.Interface
}

func NewChangePriorityUseCase(
	ticketRepo ticket.TicketRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		ticketRepo:    ticketRepo,
		changeLogRepo: changeLogRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	uc.logger.Infow("executing change priority use case",
		"ticket_id", cmd.TicketID, "priority", cmd.Priority, "actor_id", cmd.Actor.ID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Priority.IsValid() {
		return nil, errors.NewValidationError("invalid priority")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !ticket.CanDrag(cmd.Actor, t) {
		return nil, errors.NewForbiddenError("not allowed to modify this ticket")
	}

	oldPriority := t.Priority()
	if oldPriority == cmd.Priority {
		// No change, no audit row.
		return &ChangePriorityResult{
			TicketID:    t.ID(),
			OldPriority: oldPriority.String(),
			NewPriority: oldPriority.String(),
			Version:     t.Version(),
			UpdatedAt:   t.UpdatedAt(),
		}, nil
	}

	before := ticket.SnapshotOf(t)
	now := biztime.NowUTC()

	if err := t.ChangePriority(cmd.Priority, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticket.NewChangeLogEntry(t.ID(), cmd.Actor.ID, before, ticket.SnapshotOf(t), vo.ChangeTypePriority, now)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.changeLogRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to change ticket priority", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.notifier.PriorityChanged(ctx, ticket.NewTicketPriorityChangedEvent(
		t.ID(), t.Number(), oldPriority.String(), t.Priority().String(), cmd.Actor.ID, now,
	))

	uc.logger.Infow("ticket priority changed successfully",
		"ticket_id", cmd.TicketID, "old_priority", oldPriority, "new_priority", t.Priority())

	return &ChangePriorityResult{
		TicketID:    t.ID(),
		OldPriority: oldPriority.String(),
		NewPriority: t.Priority().String(),
		Version:     t.Version(),
		UpdatedAt:   t.UpdatedAt(),
	}, nil
}
