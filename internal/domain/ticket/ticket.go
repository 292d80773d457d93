package ticket

import (
	"fmt"
	"time"

	vo "crmdesk/internal/domain/ticket/valueobjects"
)

// Ticket is the aggregate root of the support-ticket lifecycle. All status,
// priority, and category mutations go through the transition use cases so
// that every change produces exactly one change-log row.
type Ticket struct {
	id             uint
	number         string
	title          string
	description    string
	status         vo.TicketStatus
	previousStatus vo.TicketStatus
	priority       vo.Priority
	category       vo.Category
	contractID     uint
	creatorID      uint
	assigneeID     *uint

	resolvedAt *time.Time
	closedAt   *time.Time
	deletedAt  *time.Time
	restoredAt *time.Time

	creatorLastReadAt  *time.Time
	assigneeLastReadAt *time.Time

	version       int
	loadedVersion int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewTicket(
	contractID uint,
	title string,
	description string,
	priority vo.Priority,
	category vo.Category,
	creatorID uint,
	now time.Time,
) (*Ticket, error) {
	if contractID == 0 {
		return nil, fmt.Errorf("contract ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if priority == "" {
		priority = vo.PriorityUnassigned
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if category == "" {
		category = vo.CategoryOrdinary
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		title:          title,
		description:    description,
		status:         vo.StatusNew,
		previousStatus: vo.StatusNew,
		priority:       priority,
		category:       category,
		contractID:     contractID,
		creatorID:      creatorID,
		version:        1,
		loadedVersion:  1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	status vo.TicketStatus,
	previousStatus vo.TicketStatus,
	priority vo.Priority,
	category vo.Category,
	contractID uint,
	creatorID uint,
	assigneeID *uint,
	resolvedAt, closedAt, deletedAt, restoredAt *time.Time,
	creatorLastReadAt, assigneeLastReadAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !previousStatus.IsValid() {
		return nil, fmt.Errorf("invalid previous status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}

	return &Ticket{
		id:                 id,
		number:             number,
		title:              title,
		description:        description,
		status:             status,
		previousStatus:     previousStatus,
		priority:           priority,
		category:           category,
		contractID:         contractID,
		creatorID:          creatorID,
		assigneeID:         assigneeID,
		resolvedAt:         resolvedAt,
		closedAt:           closedAt,
		deletedAt:          deletedAt,
		restoredAt:         restoredAt,
		creatorLastReadAt:  creatorLastReadAt,
		assigneeLastReadAt: assigneeLastReadAt,
		version:            version,
		loadedVersion:      version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) PreviousStatus() vo.TicketStatus {
	return t.previousStatus
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) ContractID() uint {
	return t.contractID
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) DeletedAt() *time.Time {
	return t.deletedAt
}

func (t *Ticket) RestoredAt() *time.Time {
	return t.restoredAt
}

func (t *Ticket) CreatorLastReadAt() *time.Time {
	return t.creatorLastReadAt
}

func (t *Ticket) AssigneeLastReadAt() *time.Time {
	return t.assigneeLastReadAt
}

func (t *Ticket) Version() int {
	return t.version
}

// LoadedVersion is the version the entity carried when it was loaded from
// storage. Optimistic updates compare it against the stored row; it never
// changes during the entity's lifetime in memory.
func (t *Ticket) LoadedVersion() int {
	return t.loadedVersion
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// IsAssignedTo reports whether the ticket is currently assigned to userID.
func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

// AssignTo sets the assignee. It does not transition status; claiming an
// unclaimed ticket happens through TransitionTo with the claimer as assignee.
func (t *Ticket) AssignTo(assigneeID uint, now time.Time) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = now
	t.version++

	return nil
}

// TransitionTo applies one edge of the state machine. It assumes the edge has
// already been checked by the caller via Status().CanTransitionTo; calling it
// with an illegal edge returns an error and leaves the ticket unchanged.
//
// Lifecycle timestamps are set on first entry into their state and cleared
// only when the ticket moves back to waiting (reopen/restore), so re-entering
// closed without an intervening reopen keeps the original closed_at.
func (t *Ticket) TransitionTo(target vo.TicketStatus, now time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("invalid status: %s", target)
	}
	if !t.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, target)
	}

	from := t.status
	t.previousStatus = from
	t.status = target
	t.updatedAt = now
	t.version++

	switch target {
	case vo.StatusResolved:
		if t.resolvedAt == nil {
			ts := now
			t.resolvedAt = &ts
		}
	case vo.StatusClosed:
		if t.closedAt == nil {
			ts := now
			t.closedAt = &ts
		}
	case vo.StatusDeleted:
		if t.deletedAt == nil {
			ts := now
			t.deletedAt = &ts
		}
	case vo.StatusWaiting:
		// Reopen or restore: stale lifecycle timestamps are reset so the
		// next resolve/close/delete records a fresh entry.
		switch from {
		case vo.StatusResolved:
			t.resolvedAt = nil
		case vo.StatusClosed:
			t.resolvedAt = nil
			t.closedAt = nil
			ts := now
			t.restoredAt = &ts
		case vo.StatusDeleted:
			t.resolvedAt = nil
			t.closedAt = nil
			t.deletedAt = nil
			ts := now
			t.restoredAt = &ts
		}
	}

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority, now time.Time) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}

	t.priority = newPriority
	t.updatedAt = now
	t.version++

	return nil
}

func (t *Ticket) ChangeCategory(newCategory vo.Category, now time.Time) error {
	if !newCategory.IsValid() {
		return fmt.Errorf("invalid category: %s", newCategory)
	}

	t.category = newCategory
	t.updatedAt = now
	t.version++

	return nil
}

// MarkReadBy records the viewer's read position on the thread. The creator
// and the assignee each track their own last-read time; an elevated viewer
// who is neither leaves no mark.
func (t *Ticket) MarkReadBy(userID uint, now time.Time) bool {
	marked := false
	if t.creatorID == userID {
		ts := now
		t.creatorLastReadAt = &ts
		marked = true
	}
	if t.IsAssignedTo(userID) {
		ts := now
		t.assigneeLastReadAt = &ts
		marked = true
	}
	return marked
}

// UnreadFor reports whether the thread holds messages newer than the viewer's
// last-read position. latestMessageAt is the creation time of the newest
// message, or nil for an empty thread.
func (t *Ticket) UnreadFor(userID uint, latestMessageAt *time.Time) bool {
	if latestMessageAt == nil {
		return false
	}

	var lastRead *time.Time
	switch {
	case t.creatorID == userID:
		lastRead = t.creatorLastReadAt
	case t.IsAssignedTo(userID):
		lastRead = t.assigneeLastReadAt
	default:
		return false
	}

	if lastRead == nil {
		return true
	}
	return latestMessageAt.After(*lastRead)
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
