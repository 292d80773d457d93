package valueobjects

import "fmt"

type TicketStatus string

const (
	// StatusNew is the unclaimed pool; any agent may pick the ticket up.
	StatusNew TicketStatus = "new"
	// StatusWaiting is an assigned ticket being worked on.
	StatusWaiting  TicketStatus = "waiting"
	StatusResolved TicketStatus = "resolved"
	StatusClosed   TicketStatus = "closed"
	StatusDeleted  TicketStatus = "deleted"
	// StatusRemoved is terminal: the ticket row is purged and only the final
	// change-log row survives.
	StatusRemoved TicketStatus = "removed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:      true,
	StatusWaiting:  true,
	StatusResolved: true,
	StatusClosed:   true,
	StatusDeleted:  true,
	StatusRemoved:  true,
}

// ticketStatusTransitions is the exhaustive edge table of the lifecycle state
// machine. Any (current, target) pair not listed here is an illegal
// transition, regardless of who requests it.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusNew: {
		StatusWaiting,
	},
	StatusWaiting: {
		StatusResolved,
	},
	StatusResolved: {
		StatusWaiting, // reopen
		StatusClosed,
	},
	StatusClosed: {
		StatusWaiting, // restore
		StatusDeleted,
	},
	StatusDeleted: {
		StatusWaiting, // restore
		StatusRemoved,
	},
	StatusRemoved: {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowedTransitions, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsNew() bool {
	return ts == StatusNew
}

func (ts TicketStatus) IsWaiting() bool {
	return ts == StatusWaiting
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func (ts TicketStatus) IsDeleted() bool {
	return ts == StatusDeleted
}

// IsTerminal reports whether no further transitions exist from this status.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusRemoved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
