package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"physioblog/pkg/domain"
	"physioblog/pkg/storage"
	"physioblog/pkg/store"
)

const maxNoteSizeBytes = 10 * 1024 * 1024

// NoteUpload is a pending PDF upload.
type NoteUpload struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UploadNote validates and stores a PDF, writing the blob first and the
// metadata row second. A row without a blob never happens; a blob without
// a row can, and is logged.
func (a *App) UploadNote(ctx context.Context, up NoteUpload) (domain.Note, error) {
	if up.File == nil {
		return domain.Note{}, validationf("no file uploaded")
	}
	if strings.TrimSpace(up.Title) == "" {
		return domain.Note{}, validationf("title is required")
	}
	if up.ContentType != "application/pdf" {
		return domain.Note{}, validationf("only PDF files are allowed")
	}
	if up.Size > a.maxUploadBytes {
		return domain.Note{}, validationf("file size exceeds 10MB limit")
	}
	data, err := io.ReadAll(io.LimitReader(up.File, a.maxUploadBytes+1))
	if err != nil {
		return domain.Note{}, storagef("read upload", err)
	}
	if int64(len(data)) > a.maxUploadBytes {
		return domain.Note{}, validationf("file size exceeds 10MB limit")
	}

	filename := fmt.Sprintf("%d-%d_%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), sanitizeFilename(up.Filename))
	pages := pdfPageCount(data)
	if pages == 0 {
		slog.Warn("could not determine PDF page count", "filename", up.Filename)
	}

	if err := a.blobs.Save(ctx, filename, bytes.NewReader(data), int64(len(data)), up.ContentType); err != nil {
		return domain.Note{}, storagef("save file", err)
	}

	tags := up.Tags
	if tags == nil {
		tags = []string{}
	}
	note := domain.Note{
		ID:           uuid.NewString(),
		Title:        up.Title,
		Description:  up.Description,
		Filename:     filename,
		OriginalName: up.Filename,
		ContentType:  up.ContentType,
		SizeBytes:    int64(len(data)),
		Pages:        pages,
		Category:     up.Category,
		Tags:         tags,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.CreateNote(note); err != nil {
		slog.Warn("note row insert failed, file is orphaned", "filename", filename, "error", err)
		return domain.Note{}, storagef("create note", err)
	}
	return note, nil
}

// GetNote returns note metadata by ID.
func (a *App) GetNote(id string) (domain.Note, error) {
	note, ok, err := a.store.GetNote(id)
	if err != nil {
		return domain.Note{}, storagef("get note", err)
	}
	if !ok {
		return domain.Note{}, ErrNoteNotFound
	}
	return note, nil
}

// GetNoteFile returns the note's metadata and an open reader on its PDF.
func (a *App) GetNoteFile(ctx context.Context, id string) (domain.Note, io.ReadCloser, error) {
	note, err := a.GetNote(id)
	if err != nil {
		return domain.Note{}, nil, err
	}
	rc, err := a.blobs.Open(ctx, note.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			slog.Error("note row exists but file is gone", "id", id, "filename", note.Filename)
			return domain.Note{}, nil, ErrNoteFileMissing
		}
		return domain.Note{}, nil, storagef("open file", err)
	}
	return note, rc, nil
}

// DeleteNote removes the blob best-effort and then the row; the row delete
// is authoritative.
func (a *App) DeleteNote(ctx context.Context, id string) error {
	note, err := a.GetNote(id)
	if err != nil {
		return err
	}
	if err := a.blobs.Delete(ctx, note.Filename); err != nil {
		slog.Warn("failed to delete note file", "id", id, "filename", note.Filename, "error", err)
	}
	ok, err := a.store.DeleteNote(id)
	if err != nil {
		return storagef("delete note", err)
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}

// ListNotes returns one page of notes plus pagination metadata.
func (a *App) ListNotes(page, pageSize int, category, search string) ([]domain.Note, domain.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)
	notes, total, err := a.store.ListNotes(page, pageSize, store.NoteFilter{Category: category, Search: search})
	if err != nil {
		return nil, domain.Pagination{}, storagef("list notes", err)
	}
	return notes, paginate(page, pageSize, total), nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return "note.pdf"
	}
	return name
}
