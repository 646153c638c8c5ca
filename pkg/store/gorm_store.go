package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"physioblog/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&BlogModel{}, &NoteModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateBlog inserts a new post. The slug must already be unique.
func (s *GormStore) CreateBlog(post domain.BlogPost) error {
	model := blogToModel(post)
	return s.db.Create(&model).Error
}

// GetBlogBySlug retrieves a post by slug.
func (s *GormStore) GetBlogBySlug(slug string) (domain.BlogPost, bool, error) {
	var model BlogModel
	if err := s.db.First(&model, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.BlogPost{}, false, nil
		}
		return domain.BlogPost{}, false, err
	}
	return blogFromModel(model), true, nil
}

// SlugExists checks if a slug is already taken.
func (s *GormStore) SlugExists(slug string) (bool, error) {
	var count int64
	if err := s.db.Model(&BlogModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementBlogViews bumps the view counter atomically.
func (s *GormStore) IncrementBlogViews(slug string) error {
	return s.db.Model(&BlogModel{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// UpdateBlog applies a partial update and returns the stored post.
func (s *GormStore) UpdateBlog(slug string, patch BlogPatch) (domain.BlogPost, bool, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.CoverImage != nil {
		updates["cover_image"] = *patch.CoverImage
	}
	if patch.Tags != nil {
		updates["tags"] = tagsToJSON(*patch.Tags)
	}
	if patch.Author != nil {
		updates["author"] = *patch.Author
	}
	if patch.Published != nil {
		updates["published"] = *patch.Published
	}
	if patch.Featured != nil {
		updates["featured"] = *patch.Featured
	}
	if patch.ReadingTime != nil {
		updates["reading_time"] = *patch.ReadingTime
	}
	res := s.db.Model(&BlogModel{}).Where("slug = ?", slug).Updates(updates)
	if res.Error != nil {
		return domain.BlogPost{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.BlogPost{}, false, nil
	}
	return s.GetBlogBySlug(slug)
}

// DeleteBlog removes a post, reporting whether it existed.
func (s *GormStore) DeleteBlog(slug string) (bool, error) {
	res := s.db.Delete(&BlogModel{}, "slug = ?", slug)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListBlogs returns one page of posts, newest first, plus the filtered total.
func (s *GormStore) ListBlogs(page, pageSize int, filter BlogFilter) ([]domain.BlogPost, int64, error) {
	tx := s.db.Model(&BlogModel{})
	if filter.Published != nil {
		tx = tx.Where("published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		tx = tx.Where("featured = ?", *filter.Featured)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []BlogModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	res := make([]domain.BlogPost, 0, len(models))
	for _, m := range models {
		res = append(res, blogFromModel(m))
	}
	return res, total, nil
}

// CreateNote inserts a note metadata row.
func (s *GormStore) CreateNote(note domain.Note) error {
	model := noteToModel(note)
	return s.db.Create(&model).Error
}

// GetNote retrieves a note by ID.
func (s *GormStore) GetNote(id string) (domain.Note, bool, error) {
	var model NoteModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Note{}, false, nil
		}
		return domain.Note{}, false, err
	}
	return noteFromModel(model), true, nil
}

// DeleteNote removes a note row, reporting whether it existed.
func (s *GormStore) DeleteNote(id string) (bool, error) {
	res := s.db.Delete(&NoteModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListNotes returns one page of notes, newest first, plus the filtered total.
func (s *GormStore) ListNotes(page, pageSize int, filter NoteFilter) ([]domain.Note, int64, error) {
	tx := s.db.Model(&NoteModel{})
	if filter.Category != "" {
		tx = tx.Where("category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []NoteModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	res := make([]domain.Note, 0, len(models))
	for _, m := range models {
		res = append(res, noteFromModel(m))
	}
	return res, total, nil
}

func blogToModel(p domain.BlogPost) BlogModel {
	return BlogModel{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Tags:        tagsToJSON(p.Tags),
		Author:      p.Author,
		Published:   p.Published,
		Featured:    p.Featured,
		ReadingTime: p.ReadingTime,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func blogFromModel(m BlogModel) domain.BlogPost {
	return domain.BlogPost{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Content:     m.Content,
		CoverImage:  m.CoverImage,
		Tags:        tagsFromJSON(m.Tags),
		Author:      m.Author,
		Published:   m.Published,
		Featured:    m.Featured,
		ReadingTime: m.ReadingTime,
		Views:       m.Views,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func noteToModel(n domain.Note) NoteModel {
	return NoteModel{
		ID:           n.ID,
		Title:        n.Title,
		Description:  n.Description,
		Filename:     n.Filename,
		OriginalName: n.OriginalName,
		ContentType:  n.ContentType,
		SizeBytes:    n.SizeBytes,
		Pages:        n.Pages,
		Category:     n.Category,
		Tags:         tagsToJSON(n.Tags),
		CreatedAt:    n.CreatedAt,
	}
}

func noteFromModel(m NoteModel) domain.Note {
	return domain.Note{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		Pages:        m.Pages,
		Category:     m.Category,
		Tags:         tagsFromJSON(m.Tags),
		CreatedAt:    m.CreatedAt,
	}
}

func tagsToJSON(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func tagsFromJSON(raw datatypes.JSON) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}
