package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"physioblog/internal/app"
	"physioblog/internal/ratelimit"
	"physioblog/internal/util"
	"physioblog/pkg/ai"
	"physioblog/pkg/domain"
)

const serviceName = "physioblog"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                    *app.App
	RedisAddr              string
	RedisPassword          string
	ChatRateLimitPerMinute int
	TrustedProxies         []string
}

// Server exposes the public HTTP API.
type Server struct {
	app         *app.App
	mux         *http.ServeMux
	chatLimiter *ratelimit.FixedWindowLimiter
	trusted     *util.TrustedProxies
}

// New constructs the server with routes configured. Rate limiting is active
// only when a Redis address is configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, fmt.Errorf("app is required")
	}
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("parse trusted proxies: %w", err)
	}
	var chatLimiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		limit := cfg.ChatRateLimitPerMinute
		if limit <= 0 {
			limit = 20
		}
		chatLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "physioblog:ratelimit:chat", limit, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("init chat limiter: %w", err)
		}
	}
	s := &Server{
		app:         cfg.App,
		mux:         http.NewServeMux(),
		chatLimiter: chatLimiter,
		trusted:     trusted,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped in the middleware stack.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog(serviceName, s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// AI
	s.mux.HandleFunc("/api/ai/health", s.handleAIHealth)
	s.mux.HandleFunc("/api/ai/chat", s.handleChat)
	s.mux.HandleFunc("/api/ai/blog-questions", s.handleBlogQuestion)

	// blogs
	s.mux.HandleFunc("/api/blogs", s.handleBlogs)
	s.mux.HandleFunc("/api/blogs/", s.handleBlogBySlug)

	// notes
	s.mux.HandleFunc("/api/notes", s.handleNotes)
	s.mux.HandleFunc("/api/notes/upload", s.handleNoteUpload)
	s.mux.HandleFunc("/api/notes/", s.handleNoteByID)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allowRate applies the chat limiter per client IP. A nil limiter means
// rate limiting is disabled.
func (s *Server) allowRate(w http.ResponseWriter, r *http.Request) bool {
	if s.chatLimiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r, s.trusted)
	if s.chatLimiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "too many requests, please slow down")
	return false
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// Response envelope shared by every endpoint.
type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data, Message: msg})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

func writePage(w http.ResponseWriter, data any, pg domain.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &pg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// writeAppError maps application errors onto HTTP statuses. fallback is the
// client-facing message for unclassified failures; the real error is logged.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := util.LoggerFromContext(r.Context())
	switch {
	case app.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrSlugTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrBlogNotFound), errors.Is(err, app.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNoteFileMissing):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrChatNotConfigured):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		var apiErr *ai.APIError
		if errors.As(err, &apiErr) {
			logger.Error("upstream completion error", "status", apiErr.StatusCode, "message", apiErr.Message)
			writeError(w, http.StatusInternalServerError, apiErr.Message)
			return
		}
		logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
