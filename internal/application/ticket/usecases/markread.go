package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type MarkReadCommand struct {
	TicketID uint
	Actor    ticket.Actor
}

// MarkReadUseCase records the actor's read position on a ticket's thread.
// Only the creator and the assignee have a read position; for anyone else the
// call succeeds and records nothing.
type MarkReadUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewMarkReadUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *MarkReadUseCase {
	return &MarkReadUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.ID == 0 {
		return errors.NewValidationError("actor is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	if !t.MarkReadBy(cmd.Actor.ID, biztime.NowUTC()) {
		return nil
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		// A concurrent transition bumping the version is harmless here; the
		// read mark is best-effort and the next poll retries it.
		if errors.IsConflictError(err) {
			uc.logger.Debugw("read mark skipped due to concurrent update", "ticket_id", cmd.TicketID)
			return nil
		}
		uc.logger.Errorw("failed to persist read mark", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	return nil
}
