package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	AttachmentID uint
	Actor        ticket.Actor
}

// DeleteAttachmentUseCase removes an attachment's metadata row and its blob.
// The owning message is never touched.
type DeleteAttachmentUseCase struct {
	attachmentRepo ticket.AttachmentRepository
	blobStore      storage.BlobStore
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	attachmentRepo ticket.AttachmentRepository,
	blobStore storage.BlobStore,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	uc.logger.Infow("executing delete attachment use case",
		"attachment_id", cmd.AttachmentID, "actor_id", cmd.Actor.ID)

	if cmd.AttachmentID == 0 {
		return errors.NewValidationError("attachment ID is required")
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, cmd.AttachmentID)
	if err != nil {
		return err
	}

	if !ticket.CanDeleteAttachment(cmd.Actor, attachment) {
		return errors.NewForbiddenError("not allowed to delete this attachment")
	}

	if err := uc.attachmentRepo.Delete(ctx, cmd.AttachmentID); err != nil {
		uc.logger.Errorw("failed to delete attachment", "attachment_id", cmd.AttachmentID, "error", err)
		return err
	}

	// Blob removal is best-effort once the row is gone; an orphaned blob is
	// invisible to users and cheap to clean up later.
	if err := uc.blobStore.Remove(ctx, attachment.FilePath()); err != nil {
		uc.logger.Warnw("failed to remove attachment blob",
			"attachment_id", cmd.AttachmentID, "path", attachment.FilePath(), "error", err)
	}

	uc.logger.Infow("attachment deleted successfully", "attachment_id", cmd.AttachmentID)
	return nil
}
