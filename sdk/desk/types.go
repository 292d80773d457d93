// Package desk provides a Go SDK for the ticket desk API.
package desk

// Ticket is a support ticket as returned by the API.
type Ticket struct {
	ID             uint    `json:"id"`
	Number         string  `json:"number"`
	ContractID     uint    `json:"contract_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	Priority       string  `json:"priority"`
	Category       string  `json:"category"`
	CreatorID      uint    `json:"creator_id"`
	AssigneeID     *uint   `json:"assignee_id,omitempty"`
	Version        int     `json:"version"`
	Unread         bool    `json:"unread"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// Message is one entry of a ticket's thread.
type Message struct {
	ID          uint         `json:"id"`
	TicketID    uint         `json:"ticket_id"`
	UserID      uint         `json:"user_id"`
	MessageType string       `json:"message_type"`
	Body        string       `json:"body"`
	BodyHTML    string       `json:"body_html,omitempty"`
	OldStatus   *string      `json:"old_status,omitempty"`
	NewStatus   *string      `json:"new_status,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   string       `json:"created_at"`
}

// Attachment is a file attached to a ticket message.
type Attachment struct {
	ID           uint   `json:"id"`
	TicketID     uint   `json:"ticket_id"`
	MessageID    *uint  `json:"message_id,omitempty"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	CreatedAt    string `json:"created_at"`
}

// ChangeLogEntry is one row of a ticket's audit trail.
type ChangeLogEntry struct {
	ID               uint              `json:"id"`
	TicketID         uint              `json:"ticket_id"`
	UserID           uint              `json:"user_id"`
	ChangeType       string            `json:"change_type"`
	PreviousStatus   string            `json:"previous_status,omitempty"`
	NewStatus        string            `json:"new_status,omitempty"`
	PreviousPriority string            `json:"previous_priority,omitempty"`
	NewPriority      string            `json:"new_priority,omitempty"`
	PreviousCategory string            `json:"previous_category,omitempty"`
	NewCategory      string            `json:"new_category,omitempty"`
	Meta             map[string]string `json:"meta,omitempty"`
	CreatedAt        string            `json:"created_at"`
}

// CreateTicketRequest is the payload for creating a ticket.
type CreateTicketRequest struct {
	ContractID  uint   `json:"contract_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category"`
}

// CreateTicketResult is returned after a ticket is created.
type CreateTicketResult struct {
	TicketID  uint   `json:"ticket_id"`
	Number    string `json:"number"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ChangeStatusRequest moves a ticket between board columns. ExpectedStatus
// is the column the caller last saw; a stale value yields a conflict error.
type ChangeStatusRequest struct {
	ExpectedStatus string `json:"expected_status"`
	TargetStatus   string `json:"target_status"`
}

// ListTicketsOptions filters and paginates the ticket list.
type ListTicketsOptions struct {
	Status     string
	Priority   string
	Category   string
	ContractID uint
	AssigneeID uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// apiResponse is the standard API envelope.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
