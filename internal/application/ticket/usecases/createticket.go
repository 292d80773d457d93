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

type CreateTicketCommand struct {
	ContractID  uint
	Title       string
	Description string
	Priority    string
	Category    string
	Actor       ticket.Actor
}

type CreateTicketResult struct {
	TicketID  uint      `json:"ticket_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	numberGen  ticket.NumberGenerator
	notifier   Notifier
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	numberGen ticket.NumberGenerator,
	notifier Notifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		numberGen:  numberGen,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"contract_id", cmd.ContractID, "creator_id", cmd.Actor.ID)

	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	now := biztime.NowUTC()

	newTicket, err := ticket.NewTicket(
		cmd.ContractID,
		cmd.Title,
		cmd.Description,
		vo.Priority(cmd.Priority),
		vo.Category(cmd.Category),
		cmd.Actor.ID,
		now,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, errors.NewInternalError("failed to generate ticket number")
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	uc.notifier.TicketCreated(ctx, ticket.NewTicketCreatedEvent(
		newTicket.ID(),
		newTicket.Number(),
		newTicket.Title(),
		newTicket.ContractID(),
		newTicket.CreatorID(),
		newTicket.Priority().String(),
		newTicket.Category().String(),
		now,
	))

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(), "number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}
