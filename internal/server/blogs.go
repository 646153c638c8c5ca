package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"physioblog/internal/app"
)

const maxJSONBody = 1 << 20

func (s *Server) handleBlogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBlogs(w, r)
	case http.MethodPost:
		s.createBlog(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntParam(q.Get("page"), 1)
	pageSize := parseIntParam(q.Get("limit"), 10)
	published := parseBoolParam(q.Get("published"))
	featured := parseBoolParam(q.Get("featured"))

	posts, pg, err := s.app.ListBlogs(page, pageSize, published, featured)
	if err != nil {
		writeAppError(w, r, err, "failed to list blog posts")
		return
	}
	writePage(w, posts, pg)
}

func (s *Server) createBlog(w http.ResponseWriter, r *http.Request) {
	var in app.BlogInput
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	post, err := s.app.CreateBlog(in)
	if err != nil {
		writeAppError(w, r, err, "failed to create blog post")
		return
	}
	writeCreated(w, post, "blog post created successfully")
}

func (s *Server) handleBlogBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/blogs/"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		post, err := s.app.GetBlog(slug)
		if err != nil {
			writeAppError(w, r, err, "failed to load blog post")
			return
		}
		writeData(w, http.StatusOK, post)
	case http.MethodPut:
		var in app.BlogUpdate
		if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		post, err := s.app.UpdateBlog(slug, in)
		if err != nil {
			writeAppError(w, r, err, "failed to update blog post")
			return
		}
		writeData(w, http.StatusOK, post)
	case http.MethodDelete:
		if err := s.app.DeleteBlog(slug); err != nil {
			writeAppError(w, r, err, "failed to delete blog post")
			return
		}
		writeMessage(w, "blog post deleted successfully")
	default:
		methodNotAllowed(w)
	}
}

func parseIntParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func parseBoolParam(raw string) *bool {
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}
