package store

import "physioblog/pkg/domain"

// BlogFilter narrows blog listings. Nil fields mean "no constraint".
type BlogFilter struct {
	Published *bool
	Featured  *bool
}

// NoteFilter narrows note listings. Category is a case-insensitive substring
// match; Search matches title, description or tags the same way.
type NoteFilter struct {
	Category string
	Search   string
}

// BlogPatch carries a partial update; nil fields are left untouched.
// ReadingTime is set by the caller when (and only when) Content is present.
type BlogPatch struct {
	Title       *string
	Description *string
	Content     *string
	CoverImage  *string
	Tags        *[]string
	Author      *string
	Published   *bool
	Featured    *bool
	ReadingTime *int
}

// Store persists blog posts and note metadata. Implementations report
// "not found" through their boolean returns, never through errors.
type Store interface {
	CreateBlog(post domain.BlogPost) error
	GetBlogBySlug(slug string) (domain.BlogPost, bool, error)
	SlugExists(slug string) (bool, error)
	IncrementBlogViews(slug string) error
	UpdateBlog(slug string, patch BlogPatch) (domain.BlogPost, bool, error)
	DeleteBlog(slug string) (bool, error)
	ListBlogs(page, pageSize int, filter BlogFilter) ([]domain.BlogPost, int64, error)

	CreateNote(note domain.Note) error
	GetNote(id string) (domain.Note, bool, error)
	DeleteNote(id string) (bool, error)
	ListNotes(page, pageSize int, filter NoteFilter) ([]domain.Note, int64, error)
}
