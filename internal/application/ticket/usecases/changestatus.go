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

type ChangeStatusCommand struct {
	TicketID uint
	// ExpectedStatus is the status the caller last observed. The transition
	// is rejected with Conflict when the ticket has moved on since.
	ExpectedStatus vo.TicketStatus
	TargetStatus   vo.TicketStatus
	Actor          ticket.Actor
}

type ChangeStatusResult struct {
	TicketID  uint      `json:"ticket_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChangeStatusUseCase struct {
	deps     transitionDeps
	notifier Notifier
	logger   logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
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

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID, "target_status", cmd.TargetStatus, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid change status command", "error", err)
		return nil, err
	}

	t, err := uc.deps.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	oldStatus := t.Status()
	now := biztime.NowUTC()

	// An agent claiming an unclaimed ticket becomes its assignee as part of
	// the same transition.
	if t.Status().IsNew() && t.AssigneeID() == nil && !cmd.Actor.IsElevated() {
		if err := t.AssignTo(cmd.Actor.ID, now); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	expected := cmd.ExpectedStatus
	if err := applyStatusTransition(ctx, uc.deps, t, cmd.Actor, &expected, cmd.TargetStatus, nil, now); err != nil {
		uc.logger.Errorw("status transition failed",
			"ticket_id", cmd.TicketID, "target_status", cmd.TargetStatus, "error", err)
		return nil, err
	}

	uc.notifier.StatusChanged(ctx, ticket.NewTicketStatusChangedEvent(
		t.ID(), t.Number(), oldStatus.String(), t.Status().String(), cmd.Actor.ID, now,
	))

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", cmd.TicketID, "old_status", oldStatus, "new_status", t.Status())

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		Version:   t.Version(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}

func (uc *ChangeStatusUseCase) validateCommand(cmd ChangeStatusCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if !cmd.ExpectedStatus.IsValid() {
		return errors.NewValidationError("invalid expected status")
	}
	if !cmd.TargetStatus.IsValid() {
		return errors.NewValidationError("invalid target status")
	}
	if cmd.Actor.ID == 0 {
		return errors.NewValidationError("actor is required")
	}
	return nil
}
