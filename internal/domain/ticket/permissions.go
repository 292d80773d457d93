package ticket

import (
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/authorization"
)

// Actor identifies who is performing an operation. Identity resolution is
// external; the engine only sees the resolved id and role.
type Actor struct {
	ID   uint
	Role authorization.UserRole
}

func (a Actor) IsElevated() bool {
	return a.Role.IsElevated()
}

// SystemActor is the synthetic actor attributed to automated changes such as
// the archival sweep. It carries full rights and user ID 0.
func SystemActor() Actor {
	return Actor{ID: 0, Role: authorization.RoleAdmin}
}

// The permission evaluator is a pure function of (actor role, actor id,
// ticket assignee, ticket status). It performs no I/O and never mutates its
// inputs; a denial is always surfaced as an explicit error by the caller,
// never a silent no-op.

// CanDrag reports whether the actor may pick the ticket up at all. Elevated
// roles always may; an agent only for tickets assigned to them or for
// unclaimed tickets still in the new pool.
func CanDrag(actor Actor, t *Ticket) bool {
	if actor.IsElevated() {
		return true
	}
	return t.IsAssignedTo(actor.ID) || t.Status().IsNew()
}

// CanDropOnColumn reports whether the actor may move the ticket onto the
// target status column. Beyond CanDrag, an agent who already owns a claimed
// ticket may not drop it back onto new: releasing an assigned ticket into the
// unclaimed pool would bypass proper reassignment.
func CanDropOnColumn(actor Actor, t *Ticket, target vo.TicketStatus) bool {
	if !CanDrag(actor, t) {
		return false
	}
	if actor.IsElevated() {
		return true
	}
	if target.IsNew() && t.IsAssignedTo(actor.ID) && !t.Status().IsNew() {
		return false
	}
	return true
}

// CanReply reports whether the actor may post to the ticket's thread.
func CanReply(actor Actor, t *Ticket) bool {
	if actor.IsElevated() {
		return true
	}
	return t.IsAssignedTo(actor.ID)
}

// CanClose reports whether the actor may close the ticket. Agents may close
// only their own tickets and only from resolved.
func CanClose(actor Actor, t *Ticket) bool {
	if actor.IsElevated() {
		return true
	}
	return t.IsAssignedTo(actor.ID) && t.Status().IsResolved()
}

// CanDeleteAttachment reports whether the actor may remove an attachment.
// Elevated roles always may; otherwise only the uploader.
func CanDeleteAttachment(actor Actor, a *Attachment) bool {
	if actor.IsElevated() {
		return true
	}
	return a.UserID() == actor.ID
}
