package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chirp/domain"
)

// FileStore is a blob store backed by a local directory. Every written blob
// gets a random uuid as its locator, the locator is also the filename. It
// implements the domain.BlobStore interface.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("err creating blob dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Ensure the FileStore struct properly implements the domain.BlobStore interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.BlobStore = &FileStore{}

// Write stores everything from r under a fresh locator. A half-written file
// is removed before the error is returned, a successful return means the
// bytes are on disk in full.
func (fs *FileStore) Write(r io.Reader) (string, error) {
	locator := uuid.NewString()
	path := filepath.Join(fs.dir, locator)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("err creating blob file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("err writing blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("err closing blob file: %w", err)
	}
	return locator, nil
}

// Open streams back the bytes stored under locator. The locator is reduced to
// its base name so a stored path can never escape the blob directory.
func (fs *FileStore) Open(locator string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(fs.dir, filepath.Base(locator)))
	if err != nil {
		return nil, fmt.Errorf("err opening blob %q: %w", locator, err)
	}
	return f, nil
}
