package storage

import (
	"context"
	"io"
)

// BlobStore persists attachment bytes. Metadata stays in the database; the
// store only deals in content.
type BlobStore interface {
	// Store writes the blob and returns its stored name, path, size, and
	// content hash. originalName is only used to derive the file extension.
	Store(ctx context.Context, ticketID uint, originalName string, r io.Reader) (*StoredBlob, error)

	// Open returns a reader over a previously stored blob.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes one blob. Removing an already absent blob is not an error.
	Remove(ctx context.Context, path string) error

	// RemoveTicket deletes every blob stored for the ticket.
	RemoveTicket(ctx context.Context, ticketID uint) error
}

// StoredBlob describes the outcome of a Store call.
type StoredBlob struct {
	FileName    string
	Path        string
	Size        int64
	ContentHash string
}
