package dto

import (
	"time"

	"crmdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID             uint       `json:"id"`
	Number         string     `json:"number"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	PreviousStatus string     `json:"previous_status"`
	Priority       string     `json:"priority"`
	Category       string     `json:"category"`
	ContractID     uint       `json:"contract_id"`
	CreatorID      uint       `json:"creator_id"`
	AssigneeID     *uint      `json:"assignee_id"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	ClosedAt       *time.Time `json:"closed_at"`
	DeletedAt      *time.Time `json:"deleted_at"`
	RestoredAt     *time.Time `json:"restored_at"`
	Version        int        `json:"version"`
	Unread         bool       `json:"unread"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:             t.ID(),
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		PreviousStatus: t.PreviousStatus().String(),
		Priority:       t.Priority().String(),
		Category:       t.Category().String(),
		ContractID:     t.ContractID(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		ResolvedAt:     t.ResolvedAt(),
		ClosedAt:       t.ClosedAt(),
		DeletedAt:      t.DeletedAt(),
		RestoredAt:     t.RestoredAt(),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

type MessageDTO struct {
	ID             uint            `json:"id"`
	TicketID       uint            `json:"ticket_id"`
	UserID         uint            `json:"user_id"`
	Body           string          `json:"body"`
	BodyHTML       string          `json:"body_html,omitempty"`
	MessageType    string          `json:"message_type"`
	HasAttachments bool            `json:"has_attachments"`
	OldStatus      *string         `json:"old_status,omitempty"`
	NewStatus      *string         `json:"new_status,omitempty"`
	Attachments    []AttachmentDTO `json:"attachments,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToMessageDTO(m *ticket.Message) *MessageDTO {
	if m == nil {
		return nil
	}

	d := &MessageDTO{
		ID:             m.ID(),
		TicketID:       m.TicketID(),
		UserID:         m.UserID(),
		Body:           m.Body(),
		MessageType:    m.Type().String(),
		HasAttachments: m.HasAttachments(),
		CreatedAt:      m.CreatedAt(),
	}

	if old := m.OldStatus(); old != nil {
		s := old.String()
		d.OldStatus = &s
	}
	if next := m.NewStatus(); next != nil {
		s := next.String()
		d.NewStatus = &s
	}

	return d
}

type AttachmentDTO struct {
	ID           uint      `json:"id"`
	TicketID     uint      `json:"ticket_id"`
	MessageID    *uint     `json:"message_id,omitempty"`
	UserID       uint      `json:"user_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	ContentHash  string    `json:"content_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToAttachmentDTO(a *ticket.Attachment) *AttachmentDTO {
	if a == nil {
		return nil
	}

	return &AttachmentDTO{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		MessageID:    a.MessageID(),
		UserID:       a.UserID(),
		FileName:     a.FileName(),
		OriginalName: a.OriginalName(),
		FileSize:     a.FileSize(),
		MimeType:     a.MimeType(),
		ContentHash:  a.ContentHash(),
		CreatedAt:    a.CreatedAt(),
	}
}

type ChangeLogDTO struct {
	ID               uint              `json:"id"`
	TicketID         uint              `json:"ticket_id"`
	UserID           uint              `json:"user_id"`
	PreviousStatus   string            `json:"previous_status"`
	NewStatus        string            `json:"new_status"`
	PreviousPriority string            `json:"previous_priority"`
	NewPriority      string            `json:"new_priority"`
	PreviousCategory string            `json:"previous_category"`
	NewCategory      string            `json:"new_category"`
	ChangeType       string            `json:"change_type"`
	Meta             map[string]string `json:"meta,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

func ToChangeLogDTO(e *ticket.ChangeLogEntry) *ChangeLogDTO {
	if e == nil {
		return nil
	}

	return &ChangeLogDTO{
		ID:               e.ID(),
		TicketID:         e.TicketID(),
		UserID:           e.UserID(),
		PreviousStatus:   e.PreviousStatus().String(),
		NewStatus:        e.NewStatus().String(),
		PreviousPriority: e.PreviousPriority().String(),
		NewPriority:      e.NewPriority().String(),
		PreviousCategory: e.PreviousCategory().String(),
		NewCategory:      e.NewCategory().String(),
		ChangeType:       e.ChangeType().String(),
		Meta:             e.Meta(),
		CreatedAt:        e.CreatedAt(),
	}
}
