package app

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"physioblog/pkg/domain"
	"physioblog/pkg/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultAuthor   = "Admin"
)

// BlogInput is the payload for creating a post.
type BlogInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	Published   bool     `json:"published"`
	Featured    bool     `json:"featured"`
}

// BlogUpdate is a partial update; nil fields are left as stored.
type BlogUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	CoverImage  *string   `json:"cover_image"`
	Tags        *[]string `json:"tags"`
	Author      *string   `json:"author"`
	Published   *bool     `json:"published"`
	Featured    *bool     `json:"featured"`
}

// CreateBlog validates input, derives slug and reading time, and stores
// the post. The slug must be unique across all posts.
func (a *App) CreateBlog(in BlogInput) (domain.BlogPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.BlogPost{}, validationf("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.BlogPost{}, validationf("description is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.BlogPost{}, validationf("content is required")
	}
	if strings.TrimSpace(in.CoverImage) == "" {
		return domain.BlogPost{}, validationf("cover image is required")
	}
	slug := Slugify(in.Title)
	if slug == "" {
		return domain.BlogPost{}, validationf("title must contain letters or digits")
	}
	exists, err := a.store.SlugExists(slug)
	if err != nil {
		return domain.BlogPost{}, storagef("check slug", err)
	}
	if exists {
		return domain.BlogPost{}, ErrSlugTaken
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = defaultAuthor
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	post := domain.BlogPost{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		Content:     in.Content,
		CoverImage:  in.CoverImage,
		Tags:        tags,
		Author:      author,
		Published:   in.Published,
		Featured:    in.Featured,
		ReadingTime: ReadingTime(in.Content),
		Views:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateBlog(post); err != nil {
		return domain.BlogPost{}, storagef("create blog", err)
	}
	return post, nil
}

// GetBlog returns a post by slug and records the read. The returned view
// count is the value before this read.
func (a *App) GetBlog(slug string) (domain.BlogPost, error) {
	post, ok, err := a.store.GetBlogBySlug(slug)
	if err != nil {
		return domain.BlogPost{}, storagef("get blog", err)
	}
	if !ok {
		return domain.BlogPost{}, ErrBlogNotFound
	}
	if err := a.store.IncrementBlogViews(slug); err != nil {
		slog.Warn("failed to increment blog views", "slug", slug, "error", err)
	}
	return post, nil
}

// UpdateBlog applies a partial update. The slug never changes, even when
// the title does; reading time is recomputed only when content changes.
func (a *App) UpdateBlog(slug string, in BlogUpdate) (domain.BlogPost, error) {
	patch := store.BlogPatch{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		CoverImage:  in.CoverImage,
		Tags:        in.Tags,
		Author:      in.Author,
		Published:   in.Published,
		Featured:    in.Featured,
	}
	if in.Content != nil {
		rt := ReadingTime(*in.Content)
		patch.ReadingTime = &rt
	}
	post, ok, err := a.store.UpdateBlog(slug, patch)
	if err != nil {
		return domain.BlogPost{}, storagef("update blog", err)
	}
	if !ok {
		return domain.BlogPost{}, ErrBlogNotFound
	}
	return post, nil
}

// DeleteBlog removes a post by slug.
func (a *App) DeleteBlog(slug string) error {
	ok, err := a.store.DeleteBlog(slug)
	if err != nil {
		return storagef("delete blog", err)
	}
	if !ok {
		return ErrBlogNotFound
	}
	return nil
}

// ListBlogs returns one page of posts plus pagination metadata.
func (a *App) ListBlogs(page, pageSize int, published, featured *bool) ([]domain.BlogPost, domain.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)
	posts, total, err := a.store.ListBlogs(page, pageSize, store.BlogFilter{Published: published, Featured: featured})
	if err != nil {
		return nil, domain.Pagination{}, storagef("list blogs", err)
	}
	return posts, paginate(page, pageSize, total), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func paginate(page, pageSize int, total int64) domain.Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return domain.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
