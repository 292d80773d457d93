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

type ChangeCategoryCommand struct {
	TicketID uint
	Category vo.Category
	Actor    ticket.Actor
}

type ChangeCategoryResult struct {
	TicketID    uint      `json:"ticket_id"`
	OldCategory string    `json:"old_category"`
	NewCategory string    `json:"new_category"`
	Version     int       `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChangeCategoryUseCase struct {
	ticketRepo    ticket.TicketRepository
	changeLogRepo ticket.ChangeLogRepository
	txManager     TransactionManager
	notifier      Notifier
	logger        logger.Interface
}

func NewChangeCategoryUseCase(
	ticketRepo ticket.TicketRepository,
	changeLogRepo ticket.ChangeLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ChangeCategoryUseCase {
	return &ChangeCategoryUseCase{
		ticketRepo:    ticketRepo,
		changeLogRepo: changeLogRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

func (uc *ChangeCategoryUseCase) Execute(ctx context.Context, cmd ChangeCategoryCommand) (*ChangeCategoryResult, error) {
	uc.logger.Infow("executing change category use case",
		"ticket_id", cmd.TicketID, "category", cmd.Category, "actor_id", cmd.Actor.ID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Category.IsValid() {
		return nil, errors.NewValidationError("invalid category")
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

	oldCategory := t.Category()
	if oldCategory == cmd.Category {
		// No change, no audit row.
		return &ChangeCategoryResult{
			TicketID:    t.ID(),
			OldCategory: oldCategory.String(),
			NewCategory: oldCategory.String(),
			Version:     t.Version(),
			UpdatedAt:   t.UpdatedAt(),
		}, nil
	}

	before := ticket.SnapshotOf(t)
	now := biztime.NowUTC()

	if err := t.ChangeCategory(cmd.Category, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticket.NewChangeLogEntry(t.ID(), cmd.Actor.ID, before, ticket.SnapshotOf(t), vo.ChangeTypeCategory, now)
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
		uc.logger.Errorw("failed to change ticket category", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.notifier.CategoryChanged(ctx, ticket.TicketCategoryChangedEvent{
		TicketID:    t.ID(),
		Number:      t.Number(),
		OldCategory: oldCategory.String(),
		NewCategory: t.Category().String(),
		ActorID:     cmd.Actor.ID,
		Timestamp:   now,
	})

	uc.logger.Infow("ticket category changed successfully",
		"ticket_id", cmd.TicketID, "old_category", oldCategory, "new_category", t.Category())

	return &ChangeCategoryResult{
		TicketID:    t.ID(),
		OldCategory: oldCategory.String(),
		NewCategory: t.Category().String(),
		Version:     t.Version(),
		UpdatedAt:   t.UpdatedAt(),
	}, nil
}
