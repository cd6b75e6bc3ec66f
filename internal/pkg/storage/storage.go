package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("storage: file not found")
	ErrInvalidPath = errors.New("storage: path escapes the storage root")
)

// Storage keeps uploaded files under slash-separated relative paths such as "avatars/ab/<uuid>.png".
type Storage interface {
	// Save replaces any file already stored at path.
	Save(ctx context.Context, path string, content io.Reader) error
	// Get returns ErrNotFound when nothing is stored at path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete is a no-op for missing files.
	Delete(ctx context.Context, path string) error
}
