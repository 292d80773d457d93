package usecases

import (
	"context"
	"time"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

const sweepMetaKey = "source"
const sweepMetaValue = "archival_sweep"

// sweepBatchLimit caps how many tickets one stage touches per run. A backlog
// larger than this drains over successive runs.
const sweepBatchLimit = 500

// RetentionPolicy holds the three sweep thresholds: how long a ticket rests
// in resolved before auto-close, in closed before auto-delete, and in deleted
// before permanent purge.
type RetentionPolicy struct {
	ResolvedRetention time.Duration
	ClosedRetention   time.Duration
	PurgeRetention    time.Duration
}

// ArchiveSweepUseCase cascades aging tickets resolved→closed→deleted→removed.
// It is idempotent: every stage re-evaluates current status and timestamps,
// so a second run with an unchanged clock selects nothing. Each ticket is
// processed independently; one failure is logged and skipped. A Redis lease
// keeps concurrent processes out; an interactive edit racing the sweep on the
// same ticket loses or wins through the ordinary optimistic-conflict path.
type ArchiveSweepUseCase struct {
	deps           transitionDeps
	attachmentRepo ticket.AttachmentRepository
	blobStore      storage.BlobStore
	sweepLock      SweepLock
	notifier       Notifier
	policy         RetentionPolicy
	instanceID     string
	logger         logger.Interface

	// now is injectable for tests.
	now func() time.Time
}

func NewArchiveSweepUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	changeLogRepo ticket.ChangeLogRepository,
	attachmentRepo ticket.AttachmentRepository,
	txManager TransactionManager,
	blobStore storage.BlobStore,
	sweepLock SweepLock,
	notifier Notifier,
	policy RetentionPolicy,
	instanceID string,
	logger logger.Interface,
) *ArchiveSweepUseCase {
	return &ArchiveSweepUseCase{
		deps: transitionDeps{
			ticketRepo:    ticketRepo,
			messageRepo:   messageRepo,
			changeLogRepo: changeLogRepo,
			txManager:     txManager,
		},
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		sweepLock:      sweepLock,
		notifier:       notifier,
		policy:         policy,
		instanceID:     instanceID,
		logger:         logger,
		now:            biztime.NowUTC,
	}
}

// Execute runs one sweep pass and returns the number of tickets it moved.
func (uc *ArchiveSweepUseCase) Execute(ctx context.Context) (int, error) {
	acquired, err := uc.sweepLock.Acquire(ctx, uc.instanceID)
	if err != nil {
		return 0, err
	}
	if !acquired {
		uc.logger.Debugw("archival sweep lease held elsewhere, skipping")
		return 0, nil
	}
	defer func() {
		if err := uc.sweepLock.Release(ctx, uc.instanceID); err != nil {
			uc.logger.Warnw("failed to release sweep lease", "error", err)
		}
	}()

	now := uc.now()
	total := 0

	total += uc.sweepStage(ctx, vo.StatusResolved, vo.StatusClosed, now.Add(-uc.policy.ResolvedRetention))
	total += uc.sweepStage(ctx, vo.StatusClosed, vo.StatusDeleted, now.Add(-uc.policy.ClosedRetention))
	total += uc.purgeStage(ctx, now.Add(-uc.policy.PurgeRetention))

	return total, nil
}

// sweepStage moves every ticket resting in `from` since before cutoff one
// step along the cascade.
func (uc *ArchiveSweepUseCase) sweepStage(ctx context.Context, from, to vo.TicketStatus, cutoff time.Time) int {
	tickets, err := uc.deps.ticketRepo.ListArchivable(ctx, from, cutoff, sweepBatchLimit)
	if err != nil {
		uc.logger.Errorw("failed to list archivable tickets",
			"from", from, "to", to, "error", err)
		return 0
	}

	actor := ticket.SystemActor()
	meta := map[string]string{sweepMetaKey: sweepMetaValue}
	moved := 0

	for _, t := range tickets {
		oldStatus := t.Status()
		now := uc.now()

		expected := from
		if err := applyStatusTransition(ctx, uc.deps, t, actor, &expected, to, meta, now); err != nil {
			// A conflict means an interactive edit won the race; the ticket
			// is re-evaluated on the next run.
			if errors.IsConflictError(err) {
				uc.logger.Debugw("sweep lost race on ticket", "ticket_id", t.ID())
			} else {
				uc.logger.Warnw("sweep failed to transition ticket",
					"ticket_id", t.ID(), "from", from, "to", to, "error", err)
			}
			continue
		}

		uc.notifier.StatusChanged(ctx, ticket.NewTicketStatusChangedEvent(
			t.ID(), t.Number(), oldStatus.String(), t.Status().String(), actor.ID, now,
		))
		moved++
	}

	return moved
}

// purgeStage permanently removes tickets whose deleted retention has lapsed.
// The terminal change-log row is written in the same transaction that purges
// the ticket, its messages, and its attachment rows, so the audit trail can
// never lose the removal record.
func (uc *ArchiveSweepUseCase) purgeStage(ctx context.Context, cutoff time.Time) int {
	tickets, err := uc.deps.ticketRepo.ListArchivable(ctx, vo.StatusDeleted, cutoff, sweepBatchLimit)
	if err != nil {
		uc.logger.Errorw("failed to list purgeable tickets", "error", err)
		return 0
	}

	actor := ticket.SystemActor()
	purged := 0

	for _, t := range tickets {
		if err := uc.purgeOne(ctx, t, actor); err != nil {
			uc.logger.Warnw("sweep failed to purge ticket", "ticket_id", t.ID(), "error", err)
			continue
		}
		purged++
	}

	return purged
}

func (uc *ArchiveSweepUseCase) purgeOne(ctx context.Context, t *ticket.Ticket, actor ticket.Actor) error {
	before := ticket.SnapshotOf(t)
	now := uc.now()

	if err := t.TransitionTo(vo.StatusRemoved, now); err != nil {
		return errors.NewInvalidTransitionError(err.Error())
	}

	entry, err := ticket.NewChangeLogEntry(t.ID(), actor.ID, before, ticket.SnapshotOf(t), vo.ChangeTypeStatus, now)
	if err != nil {
		return errors.NewInternalError(err.Error())
	}
	entry.WithMeta(sweepMetaKey, sweepMetaValue)

	ticketID := t.ID()
	number := t.Number()

	err = uc.deps.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// The optimistic update runs first: if an interactive restore won the
		// race since the ticket was listed, it fails with Conflict and the
		// whole purge rolls back, terminal audit row included.
		if err := uc.deps.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if err := uc.deps.changeLogRepo.Append(txCtx, entry); err != nil {
			return err
		}
		if err := uc.deps.messageRepo.PurgeByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		if err := uc.attachmentRepo.PurgeByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		return uc.deps.ticketRepo.Purge(txCtx, ticketID)
	})
	if err != nil {
		return err
	}

	// Blob cleanup happens after the commit; a leftover directory for a
	// purged ticket is unreachable and harmless.
	if err := uc.blobStore.RemoveTicket(ctx, ticketID); err != nil {
		uc.logger.Warnw("failed to remove purged ticket blobs", "ticket_id", ticketID, "error", err)
	}

	uc.notifier.TicketPurged(ctx, ticket.TicketPurgedEvent{
		TicketID:  ticketID,
		Number:    number,
		ActorID:   actor.ID,
		Timestamp: now,
	})

	uc.logger.Infow("ticket purged", "ticket_id", ticketID, "number", number)
	return nil
}
