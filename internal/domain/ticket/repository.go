package ticket

import (
	"context"
	"time"

	vo "crmdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	// Update persists the ticket guarded by its optimistic version: the row
	// is only written if the stored version matches the version the entity
	// was loaded with. A stale write returns a conflict error.
	Update(ctx context.Context, ticket *Ticket) error
	// Purge permanently removes the ticket row. Change-log rows are not
	// touched; the terminal audit entry outlives the ticket.
	Purge(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// ListArchivable returns tickets in the given status whose lifecycle
	// timestamp for that status is at or before cutoff. Used by the archival
	// sweep; re-running with an unchanged clock selects nothing new.
	ListArchivable(ctx context.Context, status vo.TicketStatus, cutoff time.Time, limit int) ([]*Ticket, error)
}

type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	Category   *vo.Category
	ContractID *uint
	CreatorID  *uint
	AssigneeID *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, messageID uint) (*Message, error)
	// GetByTicketID returns the full thread in creation order. The sequence
	// is append-only and replayable: the same ticket state always yields the
	// same sequence, so polling it is idempotent.
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
	LatestByTicketID(ctx context.Context, ticketID uint) (*Message, error)
	// SetHasAttachments flips the attachment bookkeeping flag; the only
	// permitted post-creation update.
	SetHasAttachments(ctx context.Context, messageID uint) error
	PurgeByTicketID(ctx context.Context, ticketID uint) error
}

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	CountByMessageID(ctx context.Context, messageID uint) (int, error)
	Delete(ctx context.Context, attachmentID uint) error
	PurgeByTicketID(ctx context.Context, ticketID uint) error
}

// ChangeLogRepository is append-only: entries are written once and never
// updated or deleted, even when their ticket is purged.
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *ChangeLogEntry) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*ChangeLogEntry, error)
}
