package app

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrBlogNotFound      = errors.New("blog post not found")
	ErrSlugTaken         = errors.New("a blog post with this title already exists")
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteFileMissing   = errors.New("note file is missing from storage")
	ErrChatNotConfigured = errors.New("AI service is not configured")
)

// ValidationError marks bad client input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps failures from the store or blob backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func storagef(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
