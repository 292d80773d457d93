package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"

	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/id"
)

// LocalBlobStore keeps attachment bytes on the local filesystem, one
// directory per ticket. Stored names are random so caller-supplied names
// never touch the filesystem; the original name lives in the database only.
type LocalBlobStore struct {
	root string
}

func NewLocalBlobStore(root string) (*LocalBlobStore, error) {
	if root == "" {
		return nil, fmt.Errorf("blob store root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob store root: %w", err)
	}
	return &LocalBlobStore{root: root}, nil
}

func (s *LocalBlobStore) Store(ctx context.Context, ticketID uint, originalName string, r io.Reader) (*StoredBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileName := id.MustGenerate(16) + storedExtension(originalName)
	relPath := filepath.Join(ticketDir(ticketID), fileName)
	absPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to prepare attachment directory", err.Error())
	}

	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create attachment file", err.Error())
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to initialize content hasher: %w", err)
	}

	size, err := io.Copy(io.MultiWriter(f, hasher), r)
	if err != nil {
		f.Close()
		os.Remove(absPath)
		return nil, apperrors.NewStorageError("failed to write attachment file", err.Error())
	}
	if err := f.Close(); err != nil {
		os.Remove(absPath)
		return nil, apperrors.NewStorageError("failed to flush attachment file", err.Error())
	}

	return &StoredBlob{
		FileName:    fileName,
		Path:        relPath,
		Size:        size,
		ContentHash: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

func (s *LocalBlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("attachment file not found")
		}
		return nil, apperrors.NewStorageError("failed to open attachment file", err.Error())
	}
	return f, nil
}

func (s *LocalBlobStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return apperrors.NewStorageError("failed to remove attachment file", err.Error())
	}
	return nil
}

func (s *LocalBlobStore) RemoveTicket(ctx context.Context, ticketID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.root, ticketDir(ticketID))); err != nil {
		return apperrors.NewStorageError("failed to remove ticket attachments", err.Error())
	}
	return nil
}

// resolve joins path against the root and rejects anything that escapes it.
func (s *LocalBlobStore) resolve(path string) (string, error) {
	abs := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(abs, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", apperrors.NewValidationError("invalid attachment path")
	}
	return abs, nil
}

func ticketDir(ticketID uint) string {
	return fmt.Sprintf("ticket-%d", ticketID)
}

// storedExtension extracts a safe lowercase extension from the uploaded name.
// The name is NFC-normalized first so the same file uploaded from different
// platforms yields the same extension.
func storedExtension(originalName string) string {
	normalized := norm.NFC.String(filepath.Base(originalName))
	ext := strings.ToLower(filepath.Ext(normalized))
	if len(ext) > 10 {
		return ""
	}
	return ext
}
