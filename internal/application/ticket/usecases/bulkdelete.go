package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/utils/setutil"
)

type BulkDeleteCommand struct {
	TicketIDs []uint
	Actor     ticket.Actor
}

// TicketOutcome is the per-ticket verdict of a bulk operation.
type TicketOutcome struct {
	TicketID uint   `json:"ticket_id"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

type BulkDeleteResult struct {
	Outcomes  []TicketOutcome `json:"outcomes"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// BulkDeleteUseCase moves a set of tickets to deleted, each independently:
// a failure on one ticket never blocks the rest.
type BulkDeleteUseCase struct {
	deps     transitionDeps
	notifier Notifier
	logger   logger.Interface
}

func NewBulkDeleteUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *BulkDeleteUseCase {
	return &BulkDeleteUseCase{
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

func (uc *BulkDeleteUseCase) Execute(ctx context.Context, cmd BulkDeleteCommand) (*BulkDeleteResult, error) {
	uc.logger.Infow("executing bulk delete use case",
		"ticket_count", len(cmd.TicketIDs), "actor_id", cmd.Actor.ID)

	if len(cmd.TicketIDs) == 0 {
		return nil, errors.NewValidationError("at least one ticket ID is required")
	}
	if !cmd.Actor.IsElevated() {
		return nil, errors.NewForbiddenError("bulk delete requires an elevated role")
	}

	// Outcomes come back in request order so callers can correlate them
	// positionally; duplicate IDs are processed once.
	seen := setutil.NewUintSetWithCap(len(cmd.TicketIDs))

	result := &BulkDeleteResult{
		Outcomes: make([]TicketOutcome, 0, len(cmd.TicketIDs)),
	}

	for _, ticketID := range cmd.TicketIDs {
		if seen.Has(ticketID) {
			continue
		}
		seen.Add(ticketID)

		if err := uc.deleteOne(ctx, ticketID, cmd.Actor); err != nil {
			uc.logger.Warnw("bulk delete skipped ticket",
				"ticket_id", ticketID, "error", err)
			result.Outcomes = append(result.Outcomes, TicketOutcome{
				TicketID: ticketID,
				Error:    err.Error(),
			})
			result.Failed++
			continue
		}

		result.Outcomes = append(result.Outcomes, TicketOutcome{
			TicketID: ticketID,
			Success:  true,
		})
		result.Succeeded++
	}

	uc.logger.Infow("bulk delete completed",
		"succeeded", result.Succeeded, "failed", result.Failed)

	return result, nil
}

func (uc *BulkDeleteUseCase) deleteOne(ctx context.Context, ticketID uint, actor ticket.Actor) error {
	t, err := uc.deps.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	oldStatus := t.Status()
	now := biztime.NowUTC()

	if err := applyStatusTransition(ctx, uc.deps, t, actor, nil, vo.StatusDeleted, nil, now); err != nil {
		return err
	}

	uc.notifier.StatusChanged(ctx, ticket.NewTicketStatusChangedEvent(
		t.ID(), t.Number(), oldStatus.String(), t.Status().String(), actor.ID, now,
	))

	return nil
}
