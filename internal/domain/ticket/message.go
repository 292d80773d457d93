package ticket

import (
	"fmt"
	"time"

	vo "crmdesk/internal/domain/ticket/valueobjects"
)

// Message is one entry of a ticket's thread. Messages are append-only; the
// only post-creation edit is the attachment-count bookkeeping flag.
type Message struct {
	id             uint
	ticketID       uint
	userID         uint
	body           string
	messageType    vo.MessageType
	hasAttachments bool
	oldStatus      *vo.TicketStatus
	newStatus      *vo.TicketStatus
	createdAt      time.Time
}

func NewTextMessage(ticketID uint, userID uint, body string, now time.Time) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body cannot be empty")
	}
	if len(body) > 10000 {
		return nil, fmt.Errorf("message body exceeds maximum length of 10000 characters")
	}

	return &Message{
		ticketID:    ticketID,
		userID:      userID,
		body:        body,
		messageType: vo.MessageTypeText,
		createdAt:   now,
	}, nil
}

// NewStatusChangeMessage records a lifecycle event in the thread so the
// conversation visibly narrates what happened to the ticket.
func NewStatusChangeMessage(
	ticketID uint,
	userID uint,
	oldStatus, newStatus vo.TicketStatus,
	now time.Time,
) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !oldStatus.IsValid() || !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid status on status change message")
	}

	return &Message{
		ticketID:    ticketID,
		userID:      userID,
		body:        fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus),
		messageType: vo.MessageTypeStatusChange,
		oldStatus:   &oldStatus,
		newStatus:   &newStatus,
		createdAt:   now,
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	userID uint,
	body string,
	messageType vo.MessageType,
	hasAttachments bool,
	oldStatus, newStatus *vo.TicketStatus,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}

	return &Message{
		id:             id,
		ticketID:       ticketID,
		userID:         userID,
		body:           body,
		messageType:    messageType,
		hasAttachments: hasAttachments,
		oldStatus:      oldStatus,
		newStatus:      newStatus,
		createdAt:      createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) UserID() uint {
	return m.userID
}

func (m *Message) Body() string {
	return m.body
}

func (m *Message) Type() vo.MessageType {
	return m.messageType
}

func (m *Message) HasAttachments() bool {
	return m.hasAttachments
}

func (m *Message) OldStatus() *vo.TicketStatus {
	return m.oldStatus
}

func (m *Message) NewStatus() *vo.TicketStatus {
	return m.newStatus
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// MarkHasAttachments flips the attachment bookkeeping flag. This is the only
// mutation permitted on a persisted message.
func (m *Message) MarkHasAttachments() {
	m.hasAttachments = true
	if m.messageType == vo.MessageTypeText && m.body == "" {
		m.messageType = vo.MessageTypeAttachment
	}
}
