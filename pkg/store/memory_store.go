package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"physioblog/pkg/domain"
)

// MemoryStore keeps everything in-process. It backs tests and local runs
// without a database; semantics mirror GormStore.
type MemoryStore struct {
	mu    sync.RWMutex
	blogs map[string]domain.BlogPost // key: slug
	notes map[string]domain.Note     // key: note ID
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blogs: make(map[string]domain.BlogPost),
		notes: make(map[string]domain.Note),
	}
}

// CreateBlog stores a new post keyed by slug.
func (m *MemoryStore) CreateBlog(post domain.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blogs[post.Slug] = post
	return nil
}

// GetBlogBySlug retrieves a post by slug.
func (m *MemoryStore) GetBlogBySlug(slug string) (domain.BlogPost, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.blogs[slug]
	return p, ok, nil
}

// SlugExists checks if a slug is already taken.
func (m *MemoryStore) SlugExists(slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blogs[slug]
	return ok, nil
}

// IncrementBlogViews bumps the view counter.
func (m *MemoryStore) IncrementBlogViews(slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.blogs[slug]
	if !ok {
		return nil
	}
	p.Views++
	m.blogs[slug] = p
	return nil
}

// UpdateBlog applies a partial update and returns the stored post.
func (m *MemoryStore) UpdateBlog(slug string, patch BlogPatch) (domain.BlogPost, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.blogs[slug]
	if !ok {
		return domain.BlogPost{}, false, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		p.CoverImage = *patch.CoverImage
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.ReadingTime != nil {
		p.ReadingTime = *patch.ReadingTime
	}
	p.UpdatedAt = time.Now().UTC()
	m.blogs[slug] = p
	return p, true, nil
}

// DeleteBlog removes a post, reporting whether it existed.
func (m *MemoryStore) DeleteBlog(slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[slug]; !ok {
		return false, nil
	}
	delete(m.blogs, slug)
	return true, nil
}

// ListBlogs returns one page of posts, newest first, plus the filtered total.
func (m *MemoryStore) ListBlogs(page, pageSize int, filter BlogFilter) ([]domain.BlogPost, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.BlogPost, 0, len(m.blogs))
	for _, p := range m.blogs {
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return pageSlice(matched, page, pageSize), int64(len(matched)), nil
}

// CreateNote inserts a note metadata row.
func (m *MemoryStore) CreateNote(note domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = note
	return nil
}

// GetNote retrieves a note by ID.
func (m *MemoryStore) GetNote(id string) (domain.Note, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	return n, ok, nil
}

// DeleteNote removes a note, reporting whether it existed.
func (m *MemoryStore) DeleteNote(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

// ListNotes returns one page of notes, newest first, plus the filtered total.
func (m *MemoryStore) ListNotes(page, pageSize int, filter NoteFilter) ([]domain.Note, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if filter.Category != "" && !containsFold(n.Category, filter.Category) {
			continue
		}
		if filter.Search != "" && !noteMatches(n, filter.Search) {
			continue
		}
		matched = append(matched, n)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return pageSlice(matched, page, pageSize), int64(len(matched)), nil
}

func noteMatches(n domain.Note, search string) bool {
	if containsFold(n.Title, search) || containsFold(n.Description, search) {
		return true
	}
	for _, tag := range n.Tags {
		if containsFold(tag, search) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func pageSlice[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
