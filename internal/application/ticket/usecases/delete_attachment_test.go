package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/authorization"
	"crmdesk/internal/shared/errors"
)

func testAttachment(id, uploaderID uint) *ticket.Attachment {
	a, err := ticket.ReconstructAttachment(
		id, 1, uintPtr(7), uploaderID,
		"stored-report.pdf", "report.pdf", "ticket-1/stored-report.pdf",
		1024, "application/pdf", "deadbeef",
		time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return a
}

func TestDeleteAttachmentUseCase_Execute_UploaderDeletes(t *testing.T) {
	var deleted []uint
	attachmentRepo := &mockAttachmentRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Attachment, error) {
			return testAttachment(9, 5), nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	blobStore := &mockBlobStore{}
	uc := NewDeleteAttachmentUseCase(attachmentRepo, blobStore, &mockLogger{})

	err := uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: 9,
		Actor:        ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{9}, deleted)
	assert.Equal(t, []string{"ticket-1/stored-report.pdf"}, blobStore.removedPaths)
}

func TestDeleteAttachmentUseCase_Execute_StrangerForbidden(t *testing.T) {
	attachmentRepo := &mockAttachmentRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Attachment, error) {
			return testAttachment(9, 5), nil
		},
	}
	blobStore := &mockBlobStore{}
	uc := NewDeleteAttachmentUseCase(attachmentRepo, blobStore, &mockLogger{})

	err := uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: 9,
		Actor:        ticket.Actor{ID: 8, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
	assert.Empty(t, blobStore.removedPaths)
}

func TestDeleteAttachmentUseCase_Execute_ElevatedDeletesAny(t *testing.T) {
	attachmentRepo := &mockAttachmentRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Attachment, error) {
			return testAttachment(9, 5), nil
		},
	}
	uc := NewDeleteAttachmentUseCase(attachmentRepo, &mockBlobStore{}, &mockLogger{})

	err := uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: 9,
		Actor:        ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	assert.NoError(t, err)
}

func TestDeleteAttachmentUseCase_Execute_BlobRemovalIsBestEffort(t *testing.T) {
	attachmentRepo := &mockAttachmentRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Attachment, error) {
			return testAttachment(9, 5), nil
		},
	}
	blobStore := &mockBlobStore{
		RemoveFunc: func(ctx context.Context, path string) error {
			return errors.NewStorageError("disk gone")
		},
	}
	uc := NewDeleteAttachmentUseCase(attachmentRepo, blobStore, &mockLogger{})

	err := uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: 9,
		Actor:        ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	assert.NoError(t, err, "row deletion wins even when the blob lingers")
}
