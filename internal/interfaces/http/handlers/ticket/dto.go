package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/ticket/usecases"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	ContractID  uint   `json:"contract_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string `json:"category" binding:"required,oneof=ordinary extraordinary"`
}

func (r *CreateTicketRequest) ToCommand(actor ticket.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		ContractID:  r.ContractID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		Actor:       actor,
	}
}

// ChangeStatusRequest carries the drag-and-drop move. ExpectedStatus is the
// column the client dragged the card from; a stale value means someone else
// moved the ticket first and the move is rejected.
type ChangeStatusRequest struct {
	ExpectedStatus string `json:"expected_status" binding:"required"`
	TargetStatus   string `json:"target_status" binding:"required"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=low medium high unassigned"`
}

type ChangeCategoryRequest struct {
	Category string `json:"category" binding:"required,oneof=ordinary extraordinary"`
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type BulkDeleteRequest struct {
	TicketIDs []uint `json:"ticket_ids" binding:"required,min=1"`
}

type ListTicketsRequest struct {
	Status     string
	Priority   string
	Category   string
	ContractID *uint
	CreatorID  *uint
	AssigneeID *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

func (r *ListTicketsRequest) ToQuery(actor ticket.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Status:     r.Status,
		Priority:   r.Priority,
		Category:   r.Category,
		ContractID: r.ContractID,
		CreatorID:  r.CreatorID,
		AssigneeID: r.AssigneeID,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
		Actor:      actor,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	pg := utils.ParsePaginationWithLimits(c, 50, 100)

	req := &ListTicketsRequest{
		Page:      pg.Page,
		PageSize:  pg.PageSize,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	var err error
	if req.ContractID, err = parseOptionalUint(c, "contract_id"); err != nil {
		return nil, err
	}
	if req.CreatorID, err = parseOptionalUint(c, "creator_id"); err != nil {
		return nil, err
	}
	if req.AssigneeID, err = parseOptionalUint(c, "assignee_id"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseOptionalUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError("Invalid " + name)
	}
	id := uint(v)
	return &id, nil
}
