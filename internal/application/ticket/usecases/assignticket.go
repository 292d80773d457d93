package usecases

import (
	"context"
	"time"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	Actor      ticket.Actor
}

type AssignTicketResult struct {
	TicketID   uint      `json:"ticket_id"`
	AssigneeID uint      `json:"assignee_id"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AssignTicketUseCase hands a ticket to an agent without touching its status.
// Agents acquire tickets themselves by claiming unassigned new ones; explicit
// assignment is the elevated-role path for tickets that left the new column
// unclaimed, or for reassigning work between agents. Assignment is not a
// status, priority, or category change, so it writes no change-log row.
type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid assign ticket command", "error", err)
		return nil, err
	}

	if !cmd.Actor.IsElevated() {
		return nil, errors.NewForbiddenError("assigning tickets requires an elevated role")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	now := biztime.NowUTC()
	if err := t.AssignTo(cmd.AssigneeID, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket assignee",
			"ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket assigned successfully",
		"ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)

	return &AssignTicketResult{
		TicketID:   t.ID(),
		AssigneeID: cmd.AssigneeID,
		Status:     t.Status().String(),
		Version:    t.Version(),
		UpdatedAt:  t.UpdatedAt(),
	}, nil
}

func (uc *AssignTicketUseCase) validateCommand(cmd AssignTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.AssigneeID == 0 {
		return errors.NewValidationError("assignee ID is required")
	}
	if cmd.Actor.ID == 0 {
		return errors.NewValidationError("actor is required")
	}
	return nil
}
