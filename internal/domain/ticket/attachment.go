package ticket

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Attachment is validated file metadata linked to a ticket and optionally to
// one message of the same ticket. The bytes themselves live in the blob
// store; deleting an attachment never deletes its owning message.
type Attachment struct {
	id           uint
	ticketID     uint
	messageID    *uint
	userID       uint
	fileName     string
	originalName string
	filePath     string
	fileSize     int64
	mimeType     string
	contentHash  string
	createdAt    time.Time
}

func NewAttachment(
	ticketID uint,
	messageID *uint,
	userID uint,
	fileName string,
	originalName string,
	filePath string,
	fileSize int64,
	mimeType string,
	contentHash string,
	now time.Time,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if len(originalName) == 0 {
		return nil, fmt.Errorf("original file name is required")
	}
	if fileSize <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}

	return &Attachment{
		ticketID:     ticketID,
		messageID:    messageID,
		userID:       userID,
		fileName:     fileName,
		originalName: originalName,
		filePath:     filePath,
		fileSize:     fileSize,
		mimeType:     mimeType,
		contentHash:  contentHash,
		createdAt:    now,
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	messageID *uint,
	userID uint,
	fileName string,
	originalName string,
	filePath string,
	fileSize int64,
	mimeType string,
	contentHash string,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:           id,
		ticketID:     ticketID,
		messageID:    messageID,
		userID:       userID,
		fileName:     fileName,
		originalName: originalName,
		filePath:     filePath,
		fileSize:     fileSize,
		mimeType:     mimeType,
		contentHash:  contentHash,
		createdAt:    createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) MessageID() *uint {
	return a.messageID
}

func (a *Attachment) UserID() uint {
	return a.userID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) OriginalName() string {
	return a.originalName
}

func (a *Attachment) FilePath() string {
	return a.filePath
}

func (a *Attachment) FileSize() int64 {
	return a.fileSize
}

func (a *Attachment) MimeType() string {
	return a.mimeType
}

func (a *Attachment) ContentHash() string {
	return a.contentHash
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}

// AttachmentPolicy holds the upload limits applied before any file is
// accepted: a per-message count cap, a per-file size ceiling, and an
// extension denylist for executable and script types.
type AttachmentPolicy struct {
	MaxPerMessage     int
	MaxSizeBytes      int64
	BlockedExtensions []string
}

// ValidateFile checks one candidate file against the policy. It returns an
// error describing the first violated rule, or nil if the file is acceptable.
func (p AttachmentPolicy) ValidateFile(originalName string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("file %q is empty", originalName)
	}
	if p.MaxSizeBytes > 0 && size > p.MaxSizeBytes {
		return fmt.Errorf("file %q exceeds the maximum size of %d bytes", originalName, p.MaxSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	for _, blocked := range p.BlockedExtensions {
		if ext == strings.ToLower(blocked) {
			return fmt.Errorf("file type %q is not allowed", ext)
		}
	}

	return nil
}

// ValidateCount checks that adding `adding` files to a message already
// holding `existing` attachments stays within the per-message cap.
func (p AttachmentPolicy) ValidateCount(existing, adding int) error {
	if p.MaxPerMessage > 0 && existing+adding > p.MaxPerMessage {
		return fmt.Errorf("message would exceed the maximum of %d attachments", p.MaxPerMessage)
	}
	return nil
}
