package domain

import "time"

// Chat message roles accepted by the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation. Order within a slice is
// meaningful; messages are never persisted.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BlogPost is a published or draft article. Slug is derived from the title at
// creation time and never changes afterwards, even when the title does.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"cover_image"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Published   bool      `json:"published"`
	Featured    bool      `json:"featured"`
	ReadingTime int       `json:"reading_time"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Note is the metadata row for an uploaded PDF. The binary itself lives in
// the blob store under Filename; the row is the source of truth.
type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size"`
	Pages        int       `json:"pages,omitempty"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}
