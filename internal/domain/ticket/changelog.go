package ticket

import (
	"fmt"
	"time"

	vo "crmdesk/internal/domain/ticket/valueobjects"
)

// ChangeLogEntry is one immutable row of the audit trail. Exactly one entry
// is appended per status/priority/category change; entries are never edited
// or deleted, and the terminal `removed` entry outlives its ticket row.
type ChangeLogEntry struct {
	id               uint
	ticketID         uint
	userID           uint
	previousStatus   vo.TicketStatus
	newStatus        vo.TicketStatus
	previousPriority vo.Priority
	newPriority      vo.Priority
	previousCategory vo.Category
	newCategory      vo.Category
	changeType       vo.ChangeType
	meta             map[string]string
	createdAt        time.Time
}

// NewChangeLogEntry builds an audit row from the ticket's state immediately
// before and after a change. before must be captured prior to mutating the
// ticket.
func NewChangeLogEntry(
	ticketID uint,
	userID uint,
	before, after Snapshot,
	changeType vo.ChangeType,
	now time.Time,
) (*ChangeLogEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !changeType.IsValid() {
		return nil, fmt.Errorf("invalid change type")
	}

	return &ChangeLogEntry{
		ticketID:         ticketID,
		userID:           userID,
		previousStatus:   before.Status,
		newStatus:        after.Status,
		previousPriority: before.Priority,
		newPriority:      after.Priority,
		previousCategory: before.Category,
		newCategory:      after.Category,
		changeType:       changeType,
		createdAt:        now,
	}, nil
}

func ReconstructChangeLogEntry(
	id uint,
	ticketID uint,
	userID uint,
	previousStatus, newStatus vo.TicketStatus,
	previousPriority, newPriority vo.Priority,
	previousCategory, newCategory vo.Category,
	changeType vo.ChangeType,
	meta map[string]string,
	createdAt time.Time,
) (*ChangeLogEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("change log entry ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !changeType.IsValid() {
		return nil, fmt.Errorf("invalid change type")
	}

	return &ChangeLogEntry{
		id:               id,
		ticketID:         ticketID,
		userID:           userID,
		previousStatus:   previousStatus,
		newStatus:        newStatus,
		previousPriority: previousPriority,
		newPriority:      newPriority,
		previousCategory: previousCategory,
		newCategory:      newCategory,
		changeType:       changeType,
		meta:             meta,
		createdAt:        createdAt,
	}, nil
}

// Snapshot captures the audited fields of a ticket at one instant.
type Snapshot struct {
	Status   vo.TicketStatus
	Priority vo.Priority
	Category vo.Category
}

// SnapshotOf reads the audited fields from a ticket.
func SnapshotOf(t *Ticket) Snapshot {
	return Snapshot{
		Status:   t.Status(),
		Priority: t.Priority(),
		Category: t.Category(),
	}
}

func (e *ChangeLogEntry) ID() uint {
	return e.id
}

func (e *ChangeLogEntry) TicketID() uint {
	return e.ticketID
}

func (e *ChangeLogEntry) UserID() uint {
	return e.userID
}

func (e *ChangeLogEntry) PreviousStatus() vo.TicketStatus {
	return e.previousStatus
}

func (e *ChangeLogEntry) NewStatus() vo.TicketStatus {
	return e.newStatus
}

func (e *ChangeLogEntry) PreviousPriority() vo.Priority {
	return e.previousPriority
}

func (e *ChangeLogEntry) NewPriority() vo.Priority {
	return e.newPriority
}

func (e *ChangeLogEntry) PreviousCategory() vo.Category {
	return e.previousCategory
}

func (e *ChangeLogEntry) NewCategory() vo.Category {
	return e.newCategory
}

func (e *ChangeLogEntry) ChangeType() vo.ChangeType {
	return e.changeType
}

func (e *ChangeLogEntry) Meta() map[string]string {
	if e.meta == nil {
		return nil
	}
	metaCopy := make(map[string]string, len(e.meta))
	for k, v := range e.meta {
		metaCopy[k] = v
	}
	return metaCopy
}

// WithMeta attaches contextual detail (for example the sweep run that issued
// an automated change). It may only be called before the entry is persisted.
func (e *ChangeLogEntry) WithMeta(key, value string) *ChangeLogEntry {
	if e.meta == nil {
		e.meta = make(map[string]string)
	}
	e.meta[key] = value
	return e
}

func (e *ChangeLogEntry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *ChangeLogEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("change log entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("change log entry ID cannot be zero")
	}
	e.id = id
	return nil
}
