package ticket

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/ticket/usecases"
	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/authorization"
	"crmdesk/internal/shared/constants"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC      usecases.CreateTicketExecutor
	assignTicketUC      usecases.AssignTicketExecutor
	changeStatusUC      usecases.ChangeStatusExecutor
	changePriorityUC    usecases.ChangePriorityExecutor
	changeCategoryUC    usecases.ChangeCategoryExecutor
	closeTicketUC       usecases.CloseTicketExecutor
	restoreTicketUC     usecases.RestoreTicketExecutor
	bulkDeleteUC        usecases.BulkDeleteExecutor
	getTicketUC         usecases.GetTicketExecutor
	listTicketsUC       usecases.ListTicketsExecutor
	getChangeLogUC      usecases.GetChangeLogExecutor
	postMessageUC       usecases.PostMessageExecutor
	listMessagesUC      usecases.ListMessagesExecutor
	markReadUC          usecases.MarkReadExecutor
	uploadAttachmentsUC usecases.UploadAttachmentsExecutor
	deleteAttachmentUC  usecases.DeleteAttachmentExecutor
	logger              logger.Interface
}

type TicketHandlerConfig struct {
	CreateTicketUC      usecases.CreateTicketExecutor
	AssignTicketUC      usecases.AssignTicketExecutor
	ChangeStatusUC      usecases.ChangeStatusExecutor
	ChangePriorityUC    usecases.ChangePriorityExecutor
	ChangeCategoryUC    usecases.ChangeCategoryExecutor
	CloseTicketUC       usecases.CloseTicketExecutor
	RestoreTicketUC     usecases.RestoreTicketExecutor
	BulkDeleteUC        usecases.BulkDeleteExecutor
	GetTicketUC         usecases.GetTicketExecutor
	ListTicketsUC       usecases.ListTicketsExecutor
	GetChangeLogUC      usecases.GetChangeLogExecutor
	PostMessageUC       usecases.PostMessageExecutor
	ListMessagesUC      usecases.ListMessagesExecutor
	MarkReadUC          usecases.MarkReadExecutor
	UploadAttachmentsUC usecases.UploadAttachmentsExecutor
	DeleteAttachmentUC  usecases.DeleteAttachmentExecutor
}

func NewTicketHandler(cfg TicketHandlerConfig) *TicketHandler {
	return &TicketHandler{
		createTicketUC:      cfg.CreateTicketUC,
		assignTicketUC:      cfg.AssignTicketUC,
		changeStatusUC:      cfg.ChangeStatusUC,
		changePriorityUC:    cfg.ChangePriorityUC,
		changeCategoryUC:    cfg.ChangeCategoryUC,
		closeTicketUC:       cfg.CloseTicketUC,
		restoreTicketUC:     cfg.RestoreTicketUC,
		bulkDeleteUC:        cfg.BulkDeleteUC,
		getTicketUC:         cfg.GetTicketUC,
		listTicketsUC:       cfg.ListTicketsUC,
		getChangeLogUC:      cfg.GetChangeLogUC,
		postMessageUC:       cfg.PostMessageUC,
		listMessagesUC:      cfg.ListMessagesUC,
		markReadUC:          cfg.MarkReadUC,
		uploadAttachmentsUC: cfg.UploadAttachmentsUC,
		deleteAttachmentUC:  cfg.DeleteAttachmentUC,
		logger:              logger.NewLogger(),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// AssignTicket handles PATCH /tickets/:id/assignee
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		Actor:      actorFromContext(c),
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// ChangeStatus handles PATCH /tickets/:id/status
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	expected, err := vo.NewTicketStatus(req.ExpectedStatus)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid expected_status"))
		return
	}
	target, err := vo.NewTicketStatus(req.TargetStatus)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid target_status"))
		return
	}

	cmd := usecases.ChangeStatusCommand{
		TicketID:       ticketID,
		ExpectedStatus: expected,
		TargetStatus:   target,
		Actor:          actorFromContext(c),
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// ChangePriority handles PATCH /tickets/:id/priority
func (h *TicketHandler) ChangePriority(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	priority, err := vo.NewPriority(req.Priority)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid priority"))
		return
	}

	cmd := usecases.ChangePriorityCommand{
		TicketID: ticketID,
		Priority: priority,
		Actor:    actorFromContext(c),
	}

	result, err := h.changePriorityUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket priority updated successfully", result)
}

// ChangeCategory handles PATCH /tickets/:id/category
func (h *TicketHandler) ChangeCategory(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	category, err := vo.NewCategory(req.Category)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid category"))
		return
	}

	cmd := usecases.ChangeCategoryCommand{
		TicketID: ticketID,
		Category: category,
		Actor:    actorFromContext(c),
	}

	result, err := h.changeCategoryUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket category updated successfully", result)
}

// CloseTicket handles POST /tickets/:id/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CloseTicketCommand{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed successfully", result)
}

// RestoreTicket handles POST /tickets/:id/restore
func (h *TicketHandler) RestoreTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RestoreTicketCommand{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	result, err := h.restoreTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket restored successfully", result)
}

// BulkDelete handles POST /tickets/bulk-delete
func (h *TicketHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.BulkDeleteCommand{
		TicketIDs: req.TicketIDs,
		Actor:     actorFromContext(c),
	}

	result, err := h.bulkDeleteUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk delete completed", result)
}

// GetChangeLog handles GET /tickets/:id/changelog
func (h *TicketHandler) GetChangeLog(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetChangeLogQuery{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	result, err := h.getChangeLogUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PostMessage handles POST /tickets/:id/messages
func (h *TicketHandler) PostMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.PostMessageCommand{
		TicketID: ticketID,
		Body:     req.Body,
		Actor:    actorFromContext(c),
	}

	result, err := h.postMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message posted successfully")
}

// ListMessages handles GET /tickets/:id/messages
func (h *TicketHandler) ListMessages(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListMessagesQuery{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	result, err := h.listMessagesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkRead handles POST /tickets/:id/read
func (h *TicketHandler) MarkRead(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.MarkReadCommand{
		TicketID: ticketID,
		Actor:    actorFromContext(c),
	}

	if err := h.markReadUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// UploadAttachments handles POST /tickets/:id/attachments (multipart form,
// field "files", optional "message_id" form value).
func (h *TicketHandler) UploadAttachments(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid multipart form"))
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("No files provided"))
		return
	}

	var messageID *uint
	if raw := c.PostForm("message_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid message_id"))
			return
		}
		id := uint(v)
		messageID = &id
	}

	files, closers, err := openUploads(fileHeaders)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	cmd := usecases.UploadAttachmentsCommand{
		TicketID:  ticketID,
		MessageID: messageID,
		Actor:     actorFromContext(c),
		Files:     files,
	}

	result, err := h.uploadAttachmentsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Upload completed", result)
}

// DeleteAttachment handles DELETE /attachments/:id
func (h *TicketHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteAttachmentCommand{
		AttachmentID: attachmentID,
		Actor:        actorFromContext(c),
	}

	if err := h.deleteAttachmentUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func openUploads(headers []*multipart.FileHeader) ([]usecases.FileUpload, []multipart.File, error) {
	files := make([]usecases.FileUpload, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			for _, opened := range closers {
				opened.Close()
			}
			return nil, nil, errors.NewValidationError("Failed to read uploaded file", fh.Filename)
		}
		closers = append(closers, f)
		files = append(files, usecases.FileUpload{
			OriginalName: fh.Filename,
			Size:         fh.Size,
			MimeType:     fh.Header.Get("Content-Type"),
			Content:      f,
		})
	}

	return files, closers, nil
}

func actorFromContext(c *gin.Context) ticket.Actor {
	return ticket.Actor{
		ID:   c.GetUint(constants.ContextKeyUserID),
		Role: authorization.UserRole(c.GetString(constants.ContextKeyUserRole)),
	}
}

func parseTicketID(c *gin.Context) (uint, error) {
	return parseIDParam(c, "id")
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}
