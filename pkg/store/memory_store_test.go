package store

import (
	"testing"
	"time"

	"physioblog/pkg/domain"
)

func seedBlog(t *testing.T, s *MemoryStore, slug string, published, featured bool, created time.Time) {
	t.Helper()
	err := s.CreateBlog(domain.BlogPost{
		ID:        slug + "-id",
		Title:     slug,
		Slug:      slug,
		Published: published,
		Featured:  featured,
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("CreateBlog(%s): %v", slug, err)
	}
}

func TestMemoryStoreBlogLifecycle(t *testing.T) {
	s := NewMemoryStore()
	seedBlog(t, s, "first-post", true, false, time.Now().UTC())

	exists, err := s.SlugExists("first-post")
	if err != nil || !exists {
		t.Fatalf("SlugExists = %v, %v; want true, nil", exists, err)
	}

	if err := s.IncrementBlogViews("first-post"); err != nil {
		t.Fatalf("IncrementBlogViews: %v", err)
	}
	p, ok, err := s.GetBlogBySlug("first-post")
	if err != nil || !ok {
		t.Fatalf("GetBlogBySlug = %v, %v", ok, err)
	}
	if p.Views != 1 {
		t.Fatalf("Views = %d, want 1", p.Views)
	}

	title := "Renamed"
	updated, ok, err := s.UpdateBlog("first-post", BlogPatch{Title: &title})
	if err != nil || !ok {
		t.Fatalf("UpdateBlog = %v, %v", ok, err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("Title = %q, want Renamed", updated.Title)
	}
	if updated.Slug != "first-post" {
		t.Fatalf("Slug changed to %q", updated.Slug)
	}

	deleted, err := s.DeleteBlog("first-post")
	if err != nil || !deleted {
		t.Fatalf("DeleteBlog = %v, %v", deleted, err)
	}
	deleted, err = s.DeleteBlog("first-post")
	if err != nil || deleted {
		t.Fatalf("second DeleteBlog = %v, %v; want false, nil", deleted, err)
	}
}

func TestMemoryStoreListBlogsFiltersAndPaginates(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now().UTC()
	seedBlog(t, s, "oldest", true, false, base.Add(-3*time.Hour))
	seedBlog(t, s, "draft", false, false, base.Add(-2*time.Hour))
	seedBlog(t, s, "featured", true, true, base.Add(-1*time.Hour))
	seedBlog(t, s, "newest", true, false, base)

	pub := true
	posts, total, err := s.ListBlogs(1, 2, BlogFilter{Published: &pub})
	if err != nil {
		t.Fatalf("ListBlogs: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(posts) != 2 || posts[0].Slug != "newest" || posts[1].Slug != "featured" {
		t.Fatalf("page 1 = %+v", posts)
	}

	posts, _, err = s.ListBlogs(2, 2, BlogFilter{Published: &pub})
	if err != nil {
		t.Fatalf("ListBlogs page 2: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "oldest" {
		t.Fatalf("page 2 = %+v", posts)
	}

	feat := true
	posts, total, err = s.ListBlogs(1, 10, BlogFilter{Featured: &feat})
	if err != nil || total != 1 || len(posts) != 1 || posts[0].Slug != "featured" {
		t.Fatalf("featured filter = %+v, total %d, err %v", posts, total, err)
	}

	posts, total, err = s.ListBlogs(5, 10, BlogFilter{})
	if err != nil || total != 4 || len(posts) != 0 {
		t.Fatalf("out-of-range page = %+v, total %d, err %v", posts, total, err)
	}
}

func TestMemoryStoreListNotesSearch(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now().UTC()
	notes := []domain.Note{
		{ID: "n1", Title: "Knee rehab protocol", Category: "rehabilitation", Tags: []string{"knee"}, CreatedAt: base},
		{ID: "n2", Title: "Shoulder anatomy", Description: "rotator cuff overview", Category: "anatomy", CreatedAt: base.Add(time.Minute)},
		{ID: "n3", Title: "Exam prep", Tags: []string{"Shoulder", "exam"}, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, n := range notes {
		if err := s.CreateNote(n); err != nil {
			t.Fatalf("CreateNote(%s): %v", n.ID, err)
		}
	}

	got, total, err := s.ListNotes(1, 10, NoteFilter{Search: "shoulder"})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("search total = %d, items %d; want 2", total, len(got))
	}
	if got[0].ID != "n3" || got[1].ID != "n2" {
		t.Fatalf("order = %s, %s; want n3, n2", got[0].ID, got[1].ID)
	}

	got, total, err = s.ListNotes(1, 10, NoteFilter{Category: "REHAB"})
	if err != nil || total != 1 || got[0].ID != "n1" {
		t.Fatalf("category filter = %+v, total %d, err %v", got, total, err)
	}
}

func TestTagsJSONRoundTrip(t *testing.T) {
	if got := tagsFromJSON(tagsToJSON(nil)); len(got) != 0 {
		t.Fatalf("nil tags round-trip = %v, want empty", got)
	}
	tags := []string{"knee", "acl"}
	got := tagsFromJSON(tagsToJSON(tags))
	if len(got) != 2 || got[0] != "knee" || got[1] != "acl" {
		t.Fatalf("round-trip = %v", got)
	}
	if got := tagsFromJSON(nil); got == nil || len(got) != 0 {
		t.Fatalf("empty raw = %v, want []", got)
	}
}
