package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"physioblog/internal/app"
)

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	page := parseIntParam(q.Get("page"), 1)
	pageSize := parseIntParam(q.Get("limit"), 10)

	notes, pg, err := s.app.ListNotes(page, pageSize, q.Get("category"), q.Get("search"))
	if err != nil {
		writeAppError(w, r, err, "failed to list notes")
		return
	}
	writePage(w, notes, pg)
}

func (s *Server) handleNoteUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	// One extra MiB covers the multipart framing and text fields.
	r.Body = http.MaxBytesReader(w, r.Body, 11<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	var up multipart.File
	var filename, contentType string
	var size int64
	if err == nil {
		defer file.Close()
		up = file
		filename = header.Filename
		contentType = header.Header.Get("Content-Type")
		size = header.Size
	}

	note, err := s.app.UploadNote(r.Context(), noteUploadFrom(r, up, filename, contentType, size))
	if err != nil {
		writeAppError(w, r, err, "failed to upload note")
		return
	}
	writeJSON(w, http.StatusCreated, noteUploadResponse{
		Success:  true,
		Message:  "note uploaded successfully",
		NoteID:   note.ID,
		Filename: note.Filename,
	})
}

type noteUploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	NoteID   string `json:"noteId"`
	Filename string `json:"filename"`
}

func noteUploadFrom(r *http.Request, file multipart.File, filename, contentType string, size int64) app.NoteUpload {
	up := app.NoteUpload{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}
	if file != nil {
		up.File = file
	}
	if raw := strings.TrimSpace(r.FormValue("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				up.Tags = append(up.Tags, tag)
			}
		}
	}
	return up
}

func (s *Server) handleNoteByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/notes/"), "/")
	// "/download" is accepted as an alias for the bare ID.
	id := strings.TrimSuffix(rest, "/download")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.downloadNote(w, r, id)
	case http.MethodDelete:
		if id != rest {
			methodNotAllowed(w)
			return
		}
		if err := s.app.DeleteNote(r.Context(), id); err != nil {
			writeAppError(w, r, err, "failed to delete note")
			return
		}
		writeMessage(w, "note deleted successfully")
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) downloadNote(w http.ResponseWriter, r *http.Request, id string) {
	note, rc, err := s.app.GetNoteFile(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err, "failed to download note")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", note.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", note.OriginalName))
	if note.SizeBytes > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", note.SizeBytes))
	}
	_, _ = io.Copy(w, rc)
}
