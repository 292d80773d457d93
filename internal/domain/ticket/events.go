package ticket

import (
	"time"
)

// Domain events emitted after successful mutations. Delivery is
// fire-and-forget: the notification dispatcher and the event bus consume
// them after the transaction commits, and a delivery failure never rolls a
// change back.

type TicketCreatedEvent struct {
	TicketID   uint
	Number     string
	Title      string
	ContractID uint
	CreatorID  uint
	Priority   string
	Category   string
	Timestamp  time.Time
}

func NewTicketCreatedEvent(
	ticketID uint,
	number string,
	title string,
	contractID uint,
	creatorID uint,
	priority string,
	category string,
	timestamp time.Time,
) TicketCreatedEvent {
	return TicketCreatedEvent{
		TicketID:   ticketID,
		Number:     number,
		Title:      title,
		ContractID: contractID,
		CreatorID:  creatorID,
		Priority:   priority,
		Category:   category,
		Timestamp:  timestamp,
	}
}

type TicketStatusChangedEvent struct {
	TicketID  uint
	Number    string
	OldStatus string
	NewStatus string
	ActorID   uint
	Timestamp time.Time
}

func NewTicketStatusChangedEvent(
	ticketID uint,
	number string,
	oldStatus string,
	newStatus string,
	actorID uint,
	timestamp time.Time,
) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		TicketID:  ticketID,
		Number:    number,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorID:   actorID,
		Timestamp: timestamp,
	}
}

type TicketPriorityChangedEvent struct {
	TicketID    uint
	Number      string
	OldPriority string
	NewPriority string
	ActorID     uint
	Timestamp   time.Time
}

func NewTicketPriorityChangedEvent(
	ticketID uint,
	number string,
	oldPriority string,
	newPriority string,
	actorID uint,
	timestamp time.Time,
) TicketPriorityChangedEvent {
	return TicketPriorityChangedEvent{
		TicketID:    ticketID,
		Number:      number,
		OldPriority: oldPriority,
		NewPriority: newPriority,
		ActorID:     actorID,
		Timestamp:   timestamp,
	}
}

type TicketCategoryChangedEvent struct {
	TicketID    uint
	Number      string
	OldCategory string
	NewCategory string
	ActorID     uint
	Timestamp   time.Time
}

type MessagePostedEvent struct {
	TicketID  uint
	MessageID uint
	ActorID   uint
	Timestamp time.Time
}

func NewMessagePostedEvent(
	ticketID uint,
	messageID uint,
	actorID uint,
	timestamp time.Time,
) MessagePostedEvent {
	return MessagePostedEvent{
		TicketID:  ticketID,
		MessageID: messageID,
		ActorID:   actorID,
		Timestamp: timestamp,
	}
}

// TicketPurgedEvent marks the terminal removal of a ticket. The ticket row
// no longer exists when this event is observed; only the change log refers
// to the id.
type TicketPurgedEvent struct {
	TicketID  uint
	Number    string
	ActorID   uint
	Timestamp time.Time
}
