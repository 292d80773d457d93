package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type ChangePriorityExecutor interface {
	Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error)
}

type ChangeCategoryExecutor interface {
	Execute(ctx context.Context, cmd ChangeCategoryCommand) (*ChangeCategoryResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*ChangeStatusResult, error)
}

type RestoreTicketExecutor interface {
	Execute(ctx context.Context, cmd RestoreTicketCommand) (*ChangeStatusResult, error)
}

type BulkDeleteExecutor interface {
	Execute(ctx context.Context, cmd BulkDeleteCommand) (*BulkDeleteResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetChangeLogExecutor interface {
	Execute(ctx context.Context, query GetChangeLogQuery) ([]*dto.ChangeLogDTO, error)
}

type PostMessageExecutor interface {
	Execute(ctx context.Context, cmd PostMessageCommand) (*dto.MessageDTO, error)
}

type ListMessagesExecutor interface {
	Execute(ctx context.Context, query ListMessagesQuery) ([]*dto.MessageDTO, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) error
}

type UploadAttachmentsExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentsCommand) (*UploadAttachmentsResult, error)
}

type DeleteAttachmentExecutor interface {
	Execute(ctx context.Context, cmd DeleteAttachmentCommand) error
}

// TransactionManager runs a function inside one database transaction. The
// shared db implementation satisfies it; tests substitute a passthrough.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier receives domain events after a successful mutation. Delivery is
// fire-and-forget; implementations must never block the caller on I/O.
type Notifier interface {
	TicketCreated(ctx context.Context, event ticket.TicketCreatedEvent)
	StatusChanged(ctx context.Context, event ticket.TicketStatusChangedEvent)
	PriorityChanged(ctx context.Context, event ticket.TicketPriorityChangedEvent)
	CategoryChanged(ctx context.Context, event ticket.TicketCategoryChangedEvent)
	MessagePosted(ctx context.Context, event ticket.MessagePostedEvent)
	TicketPurged(ctx context.Context, event ticket.TicketPurgedEvent)
}

// SweepLock is the cross-process single-flight guard for the archival sweep.
type SweepLock interface {
	Acquire(ctx context.Context, instanceID string) (bool, error)
	Release(ctx context.Context, instanceID string) error
}
