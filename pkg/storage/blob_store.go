package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotExist reports that the named blob is not in the store.
var ErrNotExist = errors.New("blob does not exist")

// BlobStore holds the uploaded PDF binaries. Filenames are generated by the
// caller and are flat keys, never paths.
type BlobStore interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	Delete(ctx context.Context, filename string) error
}

// FileStore saves blobs to disk under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes a blob under the base directory.
func (f *FileStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error {
	out, err := os.Create(f.target(filename))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Open returns a reader for a stored blob.
func (f *FileStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	file, err := os.Open(f.target(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored blob. Deleting a missing blob is not an error.
func (f *FileStore) Delete(ctx context.Context, filename string) error {
	if err := os.Remove(f.target(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (f *FileStore) target(filename string) string {
	return filepath.Join(f.basePath, filepath.Base(filename))
}
