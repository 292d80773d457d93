package usecases

import (
	"context"
	"io"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

// FileUpload is one candidate file handed in by the transport layer.
type FileUpload struct {
	OriginalName string
	Size         int64
	MimeType     string
	Content      io.Reader
}

type UploadAttachmentsCommand struct {
	TicketID  uint
	MessageID *uint
	Actor     ticket.Actor
	Files     []FileUpload
}

// FileOutcome is the per-file verdict of an upload call.
type FileOutcome struct {
	OriginalName string             `json:"original_name"`
	Success      bool               `json:"success"`
	Error        string             `json:"error,omitempty"`
	Attachment   *dto.AttachmentDTO `json:"attachment,omitempty"`
}

type UploadAttachmentsResult struct {
	Outcomes  []FileOutcome `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// UploadAttachmentsUseCase validates and stores files against a ticket and
// optionally one of its messages. Failures are isolated per file: a storage
// error on one file is reported in its outcome and never invalidates the
// message or the files already accepted.
type UploadAttachmentsUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	blobStore      storage.BlobStore
	policy         ticket.AttachmentPolicy
	logger         logger.Interface
}

func NewUploadAttachmentsUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	blobStore storage.BlobStore,
	policy ticket.AttachmentPolicy,
	logger logger.Interface,
) *UploadAttachmentsUseCase {
	return &UploadAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		policy:         policy,
		logger:         logger,
	}
}

func (uc *UploadAttachmentsUseCase) Execute(ctx context.Context, cmd UploadAttachmentsCommand) (*UploadAttachmentsResult, error) {
	uc.logger.Infow("executing upload attachments use case",
		"ticket_id", cmd.TicketID, "message_id", cmd.MessageID,
		"file_count", len(cmd.Files), "actor_id", cmd.Actor.ID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if len(cmd.Files) == 0 {
		return nil, errors.NewValidationError("at least one file is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !ticket.CanReply(cmd.Actor, t) {
		return nil, errors.NewForbiddenError("not allowed to attach files to this ticket")
	}

	existing := 0
	if cmd.MessageID != nil {
		msg, err := uc.messageRepo.GetByID(ctx, *cmd.MessageID)
		if err != nil {
			return nil, err
		}
		// An attachment may only reference a message of its own ticket.
		if msg.TicketID() != cmd.TicketID {
			return nil, errors.NewValidationError("message does not belong to this ticket")
		}

		existing, err = uc.attachmentRepo.CountByMessageID(ctx, *cmd.MessageID)
		if err != nil {
			return nil, err
		}
		if err := uc.policy.ValidateCount(existing, len(cmd.Files)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	result := &UploadAttachmentsResult{
		Outcomes: make([]FileOutcome, 0, len(cmd.Files)),
	}

	for _, file := range cmd.Files {
		attachment, err := uc.storeOne(ctx, cmd, file)
		if err != nil {
			uc.logger.Warnw("attachment rejected",
				"ticket_id", cmd.TicketID, "file", file.OriginalName, "error", err)
			result.Outcomes = append(result.Outcomes, FileOutcome{
				OriginalName: file.OriginalName,
				Error:        err.Error(),
			})
			result.Failed++
			continue
		}

		result.Outcomes = append(result.Outcomes, FileOutcome{
			OriginalName: file.OriginalName,
			Success:      true,
			Attachment:   dto.ToAttachmentDTO(attachment),
		})
		result.Succeeded++
	}

	if result.Succeeded > 0 && cmd.MessageID != nil {
		if err := uc.messageRepo.SetHasAttachments(ctx, *cmd.MessageID); err != nil {
			uc.logger.Warnw("failed to flag message attachments",
				"message_id", *cmd.MessageID, "error", err)
		}
	}

	uc.logger.Infow("attachments uploaded",
		"ticket_id", cmd.TicketID, "succeeded", result.Succeeded, "failed", result.Failed)

	return result, nil
}

func (uc *UploadAttachmentsUseCase) storeOne(ctx context.Context, cmd UploadAttachmentsCommand, file FileUpload) (*ticket.Attachment, error) {
	if err := uc.policy.ValidateFile(file.OriginalName, file.Size); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	blob, err := uc.blobStore.Store(ctx, cmd.TicketID, file.OriginalName, file.Content)
	if err != nil {
		return nil, err
	}

	attachment, err := ticket.NewAttachment(
		cmd.TicketID,
		cmd.MessageID,
		cmd.Actor.ID,
		blob.FileName,
		file.OriginalName,
		blob.Path,
		blob.Size,
		file.MimeType,
		blob.ContentHash,
		biztime.NowUTC(),
	)
	if err != nil {
		uc.removeBlob(ctx, blob.Path)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		uc.removeBlob(ctx, blob.Path)
		return nil, err
	}

	return attachment, nil
}

func (uc *UploadAttachmentsUseCase) removeBlob(ctx context.Context, path string) {
	if err := uc.blobStore.Remove(ctx, path); err != nil {
		uc.logger.Warnw("failed to remove orphaned blob", "path", path, "error", err)
	}
}
