package usecases

import (
	"context"
	"fmt"
	"time"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/constants"
	"crmdesk/internal/shared/errors"
)

// transitionDeps bundles the collaborators every status-changing use case
// shares. Interactive requests and the archival sweep both go through
// applyStatusTransition, so a status change always produces exactly one audit
// row and one status_change thread message, atomically with the ticket write.
type transitionDeps struct {
	ticketRepo    ticket.TicketRepository
	messageRepo   ticket.MessageRepository
	changeLogRepo ticket.ChangeLogRepository
	txManager     TransactionManager
}

// applyStatusTransition applies one edge of the state machine to a loaded
// ticket. The checks run in a fixed order: optimistic expected-status first,
// then the edge table, then permissions. Each failure maps to its own error
// type so callers can distinguish a retryable conflict from a hard denial.
//
// The returned entry and message are already persisted when err is nil.
func applyStatusTransition(
	ctx context.Context,
	deps transitionDeps,
	t *ticket.Ticket,
	actor ticket.Actor,
	expectedStatus *vo.TicketStatus,
	target vo.TicketStatus,
	meta map[string]string,
	now time.Time,
) error {
	if expectedStatus != nil && t.Status() != *expectedStatus {
		return errors.NewConflictError(constants.ErrMsgConflict,
			fmt.Sprintf("expected status %s, found %s", *expectedStatus, t.Status()))
	}

	if !t.Status().CanTransitionTo(target) {
		return errors.NewInvalidTransitionError(
			fmt.Sprintf("cannot transition from %s to %s", t.Status(), target))
	}

	if !ticket.CanDropOnColumn(actor, t, target) {
		return errors.NewForbiddenError("not allowed to move this ticket")
	}

	before := ticket.SnapshotOf(t)
	oldStatus := t.Status()

	if err := t.TransitionTo(target, now); err != nil {
		return errors.NewInvalidTransitionError(err.Error())
	}

	entry, err := ticket.NewChangeLogEntry(t.ID(), actor.ID, before, ticket.SnapshotOf(t), vo.ChangeTypeStatus, now)
	if err != nil {
		return errors.NewInternalError(err.Error())
	}
	for k, v := range meta {
		entry.WithMeta(k, v)
	}

	statusMsg, err := ticket.NewStatusChangeMessage(t.ID(), actor.ID, oldStatus, target, now)
	if err != nil {
		return errors.NewInternalError(err.Error())
	}

	return deps.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := deps.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if err := deps.changeLogRepo.Append(txCtx, entry); err != nil {
			return err
		}
		return deps.messageRepo.Save(txCtx, statusMsg)
	})
}
